package token

// Placeholder data shown while the real fetches are in flight.

const (
	stubAddress = "0x2B51Ae4412F79c3c1cB12AA40Ea4ECEb4e80511a"
	stubTxHash  = "0x62d597ebcf3e8d60096dd0363bc2f0f5e2df27ba1dacd696c51aa7c9409f3193"
	stubHolder  = "0x2B51Ae4412F79c3c1cB12AA40Ea4ECEb4e80511b"
	stubRows    = 10
)

func strPtr(s string) *string { return &s }

// StubTokenInfo is the placeholder token, an ERC-20.
func StubTokenInfo() Token {
	return Token{
		Address:     stubAddress,
		Name:        "Placeholder",
		Symbol:      "PLC",
		Type:        TypeERC20,
		Decimals:    strPtr("18"),
		Holders:     strPtr("16026"),
		TotalSupply: strPtr("6000000000000000000000"),
	}
}

// StubAddressInfo is the placeholder contract address.
func StubAddressInfo() AddressInfo {
	return AddressInfo{
		Hash:       stubAddress,
		IsContract: true,
	}
}

// StubTransfers returns placeholder transfer rows shaped for the given kind.
func StubTransfers(kind Kind) []Transfer {
	total := TransferTotal{Value: strPtr("9851351626684503"), Decimals: strPtr("18")}
	switch kind {
	case KindNFTUnique:
		total = TransferTotal{TokenID: strPtr("35870")}
	case KindNFTMulti:
		total = TransferTotal{TokenID: strPtr("35870"), Value: strPtr("1")}
	case KindFungible, KindOther:
	}

	rows := make([]Transfer, stubRows)
	for i := range rows {
		rows[i] = Transfer{
			TxHash: stubTxHash,
			From:   AddressParam{Hash: stubAddress},
			To:     AddressParam{Hash: stubHolder},
			Total:  total,
			Type:   "token_transfer",
		}
	}
	return rows
}

// StubHolders returns placeholder holder rows.
func StubHolders() []Holder {
	rows := make([]Holder, stubRows)
	for i := range rows {
		rows[i] = Holder{Address: AddressParam{Hash: stubHolder}, Value: "1021378038331138520668"}
	}
	return rows
}

// StubInstances returns placeholder inventory rows.
func StubInstances() []Instance {
	rows := make([]Instance, stubRows)
	for i := range rows {
		rows[i] = Instance{ID: "12345", Owner: &AddressParam{Hash: stubHolder}}
	}
	return rows
}
