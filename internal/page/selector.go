package page

import "github.com/rshade/tokenscope/internal/query"

// Paginated is anything that reports a pagination descriptor.
type Paginated interface {
	Pagination() query.Pagination
}

// Bindings groups the pagination sources of the three listings.
type Bindings struct {
	Transfers Paginated
	Holders   Paginated
	Inventory Paginated
}

func (b Bindings) lookup(a ActiveResource) Paginated {
	switch a {
	case ActiveTransfers:
		return b.Transfers
	case ActiveHolders:
		return b.Holders
	case ActiveInventory:
		return b.Inventory
	case ActiveNone:
	}
	return nil
}

// PaginationChrome is the pagination control shown next to the tab bar.
type PaginationChrome struct {
	Visible    bool              `json:"visible"`
	Resource   query.Resource    `json:"resource,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
}

// SelectPagination returns the pagination of the listing behind the selected
// tab. It is visible only when that listing spans more than one page and the
// layout is not constrained. Tabs without a listing get no pagination.
func SelectPagination(selected TabID, bindings Bindings, constrained bool) PaginationChrome {
	if selected == "" {
		selected = DefaultTab
	}
	active := ResourceForTab(selected)
	source := bindings.lookup(active)
	if source == nil {
		return PaginationChrome{}
	}
	p := source.Pagination()
	return PaginationChrome{
		Visible:    p.IsVisible && !constrained,
		Resource:   active.Resource(),
		Pagination: &p,
	}
}
