// Package token defines the explorer data model for a token detail page:
// the token itself, the contract address behind it, and the rows of its
// transfers, holders and inventory listings.
package token

import "time"

// Token is the token metadata returned by the explorer's token endpoint.
type Token struct {
	Address     string  `json:"address"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Type        string  `json:"type"`
	Decimals    *string `json:"decimals"`
	Holders     *string `json:"holders"`
	TotalSupply *string `json:"total_supply"`
	IconURL     *string `json:"icon_url"`
}

// Kind returns the classified standard of the token.
func (t Token) Kind() Kind {
	return ParseKind(t.Type)
}

// AddressInfo is the contract-side view of the token address.
type AddressInfo struct {
	Hash                  string  `json:"hash"`
	Name                  *string `json:"name"`
	IsContract            bool    `json:"is_contract"`
	IsVerified            bool    `json:"is_verified"`
	HasMethodsRead        bool    `json:"has_methods_read"`
	HasMethodsWrite       bool    `json:"has_methods_write"`
	HasMethodsReadProxy   bool    `json:"has_methods_read_proxy"`
	HasMethodsWriteProxy  bool    `json:"has_methods_write_proxy"`
	ImplementationAddress *string `json:"implementation_address"`
	CreatorAddressHash    *string `json:"creator_address_hash"`
	CreationTxHash        *string `json:"creation_tx_hash"`
}

// AddressParam is an address reference embedded in list rows.
type AddressParam struct {
	Hash       string  `json:"hash"`
	Name       *string `json:"name"`
	IsContract bool    `json:"is_contract"`
}

// TransferTotal is the amount moved by a transfer. Fungible transfers carry
// Value and Decimals; NFT transfers carry TokenID (and Value for ERC-1155).
type TransferTotal struct {
	Value    *string `json:"value"`
	Decimals *string `json:"decimals"`
	TokenID  *string `json:"token_id"`
}

// Transfer is one row of the token transfers listing.
type Transfer struct {
	TxHash    string        `json:"tx_hash"`
	LogIndex  int           `json:"log_index"`
	From      AddressParam  `json:"from"`
	To        AddressParam  `json:"to"`
	Total     TransferTotal `json:"total"`
	Type      string        `json:"type"`
	Method    *string       `json:"method"`
	Timestamp *time.Time    `json:"timestamp"`
}

// Holder is one row of the token holders listing.
type Holder struct {
	Address AddressParam `json:"address"`
	Value   string       `json:"value"`
	TokenID *string      `json:"token_id"`
}

// Instance is one NFT instance of the token inventory.
type Instance struct {
	ID             string         `json:"id"`
	Owner          *AddressParam  `json:"owner"`
	ImageURL       *string        `json:"image_url"`
	AnimationURL   *string        `json:"animation_url"`
	ExternalAppURL *string        `json:"external_app_url"`
	Metadata       map[string]any `json:"metadata"`
}

// InstanceName returns the metadata name of an instance, or empty.
func (i Instance) InstanceName() string {
	if i.Metadata == nil {
		return ""
	}
	if name, ok := i.Metadata["name"].(string); ok {
		return name
	}
	return ""
}
