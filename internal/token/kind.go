package token

import "strings"

// Kind classifies a token by its contract standard.
type Kind int

const (
	// KindOther covers any standard the explorer reports that is not listed below.
	KindOther Kind = iota
	// KindFungible is an ERC-20 token.
	KindFungible
	// KindNFTUnique is an ERC-721 collection.
	KindNFTUnique
	// KindNFTMulti is an ERC-1155 collection.
	KindNFTMulti
)

// Explorer type strings.
const (
	TypeERC20   = "ERC-20"
	TypeERC721  = "ERC-721"
	TypeERC1155 = "ERC-1155"
)

// ParseKind maps an explorer type string ("ERC-20", "erc721", ...) to a Kind.
// Unknown or empty values map to KindOther.
func ParseKind(s string) Kind {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	switch normalized {
	case "ERC20":
		return KindFungible
	case "ERC721":
		return KindNFTUnique
	case "ERC1155":
		return KindNFTMulti
	default:
		return KindOther
	}
}

// String returns the explorer type string for the kind.
func (k Kind) String() string {
	switch k {
	case KindFungible:
		return TypeERC20
	case KindNFTUnique:
		return TypeERC721
	case KindNFTMulti:
		return TypeERC1155
	case KindOther:
		return "Other"
	default:
		return "Other"
	}
}

// IsNFT reports whether the kind has per-instance inventory.
func (k Kind) IsNFT() bool {
	switch k {
	case KindNFTUnique, KindNFTMulti:
		return true
	case KindFungible, KindOther:
		return false
	default:
		return false
	}
}
