// Package page coordinates the token detail page: which tabs exist, which
// paginated resource may fetch, and which pagination control is shown.
//
// Everything here is synchronous and free of I/O apart from Execute. The
// Controller is driven by events (route changes, fetch completions) and
// answers with the requests that should be issued next.
package page

import "github.com/rshade/tokenscope/internal/token"

// TabID identifies a tab or contract sub-tab as it appears in the route.
type TabID string

// Top-level tabs.
const (
	TabTransfers TabID = "token_transfers"
	TabHolders   TabID = "holders"
	TabInventory TabID = "inventory"
	TabContract  TabID = "contract"
)

// DefaultTab is selected when the route carries no tab.
const DefaultTab = TabTransfers

// VisibleTab is one navigable tab.
type VisibleTab struct {
	ID        TabID   `json:"id"`
	Title     string  `json:"title"`
	Verified  bool    `json:"verified,omitempty"`
	SubTabIDs []TabID `json:"sub_tabs,omitempty"`
}

// Label is the tab title with the verified marker appended when set.
func (t VisibleTab) Label() string {
	if t.Verified {
		return t.Title + " ✓"
	}
	return t.Title
}

// HasSubTab reports whether id is one of the tab's sub-tabs.
func (t VisibleTab) HasSubTab(id TabID) bool {
	for _, sub := range t.SubTabIDs {
		if sub == id {
			return true
		}
	}
	return false
}

// AssembleTabs returns the ordered tab list for a token and its contract.
// Transfers and holders always come first, inventory follows for NFT kinds,
// and contract is always last. Pass zero values while data is placeholder.
func AssembleTabs(entity token.Token, contract token.AddressInfo, subTabs []ContractTab) []VisibleTab {
	tabs := []VisibleTab{
		{ID: TabTransfers, Title: "Token transfers"},
		{ID: TabHolders, Title: "Holders"},
	}

	switch entity.Kind() {
	case token.KindNFTUnique, token.KindNFTMulti:
		tabs = append(tabs, VisibleTab{ID: TabInventory, Title: "Inventory"})
	case token.KindFungible, token.KindOther:
	}

	subIDs := make([]TabID, 0, len(subTabs))
	for _, sub := range subTabs {
		subIDs = append(subIDs, sub.ID)
	}
	return append(tabs, VisibleTab{
		ID:        TabContract,
		Title:     "Contract",
		Verified:  contract.IsVerified,
		SubTabIDs: subIDs,
	})
}

// FindTab returns the tab that owns id, matching either a tab ID or one of
// its sub-tab IDs.
func FindTab(tabs []VisibleTab, id TabID) (VisibleTab, bool) {
	for _, tab := range tabs {
		if tab.ID == id || tab.HasSubTab(id) {
			return tab, true
		}
	}
	return VisibleTab{}, false
}
