package page

import (
	"fmt"

	"github.com/rshade/tokenscope/internal/query"
)

// ActiveResource names the one paginated resource allowed to fetch.
type ActiveResource int

// Active resources. ActiveNone means no paginated resource may fetch.
const (
	ActiveNone ActiveResource = iota
	ActiveTransfers
	ActiveHolders
	ActiveInventory
)

// String returns the resource name, or "none".
func (a ActiveResource) String() string {
	switch a {
	case ActiveNone:
		return "none"
	case ActiveTransfers, ActiveHolders, ActiveInventory:
		return string(a.Resource())
	default:
		return fmt.Sprintf("ActiveResource(%d)", int(a))
	}
}

// Resource returns the explorer resource for a, or empty for ActiveNone.
func (a ActiveResource) Resource() query.Resource {
	switch a {
	case ActiveTransfers:
		return query.ResourceTokenTransfers
	case ActiveHolders:
		return query.ResourceTokenHolders
	case ActiveInventory:
		return query.ResourceTokenInventory
	case ActiveNone:
	}
	return ""
}

// Enabled reports whether resource may fetch under a.
func (a ActiveResource) Enabled(resource query.Resource) bool {
	return a != ActiveNone && a.Resource() == resource
}

// ResourceForTab maps a tab to its paginated resource. Tabs without one,
// such as contract, map to ActiveNone.
func ResourceForTab(tab TabID) ActiveResource {
	switch tab {
	case TabTransfers:
		return ActiveTransfers
	case TabHolders:
		return ActiveHolders
	case TabInventory:
		return ActiveInventory
	}
	return ActiveNone
}

// Activate decides which paginated resource may fetch. Nothing is enabled
// until both the token and its contract info are ready, nor when the
// selected tab is absent from tabs (a stale or invalid route).
func Activate(route Route, tabs []VisibleTab, entityReady, contractReady bool) ActiveResource {
	if route.Hash == "" || !entityReady || !contractReady {
		return ActiveNone
	}
	selected := route.SelectedTab()
	if _, ok := FindTab(tabs, selected); !ok {
		return ActiveNone
	}
	return ResourceForTab(selected)
}
