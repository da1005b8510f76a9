package query

import "net/url"

// FirstPage is the 1-based index of the first page.
const FirstPage = 1

// PageParams are the opaque keyset parameters the explorer returns as
// next_page_params and expects back as query parameters.
type PageParams map[string]string

// Encode renders the params as a deterministic query string.
func (p PageParams) Encode() string {
	if len(p) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

// Page is one page of a keyset-paginated listing.
type Page[T any] struct {
	Items          []T
	NextPageParams PageParams
}

// Pagination is the pagination descriptor exposed to page chrome.
//
//nolint:revive // Pagination is the canonical name for this exported type.
type Pagination struct {
	Page           int  `json:"page"             yaml:"page"`
	HasNextPage    bool `json:"has_next_page"    yaml:"has_next_page"`
	CanGoBackwards bool `json:"can_go_backwards" yaml:"can_go_backwards"`
	IsLoading      bool `json:"is_loading"       yaml:"is_loading"`
	IsVisible      bool `json:"is_visible"       yaml:"is_visible"`
}

// Pager tracks keyset cursors for one paginated resource. cursors[i] holds
// the params that fetch page i+1; the first page is fetched without params.
type Pager struct {
	cursors []PageParams
	next    PageParams
}

// NewPager returns a pager positioned on the first page.
func NewPager() Pager {
	return Pager{cursors: []PageParams{nil}}
}

// Page returns the current 1-based page number.
func (p Pager) Page() int {
	if len(p.cursors) == 0 {
		return FirstPage
	}
	return len(p.cursors)
}

// Current returns the params for the current page.
func (p Pager) Current() PageParams {
	if len(p.cursors) == 0 {
		return nil
	}
	return p.cursors[len(p.cursors)-1]
}

// Observe records the next_page_params of the current page's response.
func (p *Pager) Observe(next PageParams) {
	if len(next) == 0 {
		p.next = nil
		return
	}
	p.next = next
}

// HasNextPage reports whether the last response advertised another page.
func (p Pager) HasNextPage() bool {
	return len(p.next) > 0
}

// CanGoBackwards reports whether there is a previous page.
func (p Pager) CanGoBackwards() bool {
	return p.Page() > FirstPage
}

// IsVisible reports whether the listing spans more than one page.
func (p Pager) IsVisible() bool {
	return p.Page() != FirstPage || p.HasNextPage()
}

// Next advances to the next page. It returns false when there is none.
func (p *Pager) Next() bool {
	if !p.HasNextPage() {
		return false
	}
	if len(p.cursors) == 0 {
		p.cursors = []PageParams{nil}
	}
	p.cursors = append(p.cursors, p.next)
	p.next = nil
	return true
}

// Prev steps back one page. The page being left becomes the next page again.
// It returns false on the first page.
func (p *Pager) Prev() bool {
	if !p.CanGoBackwards() {
		return false
	}
	p.next = p.cursors[len(p.cursors)-1]
	p.cursors = p.cursors[:len(p.cursors)-1]
	return true
}

// Reset returns to the first page and forgets all cursors.
func (p *Pager) Reset() {
	p.cursors = []PageParams{nil}
	p.next = nil
}
