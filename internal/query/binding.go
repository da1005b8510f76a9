package query

// Request identifies one fetch of a remote resource.
type Request struct {
	Resource Resource
	Hash     string
	Params   PageParams
}

// Key returns a stable identity for the request, used to match responses.
func (r Request) Key() string {
	return string(r.Resource) + "|" + r.Hash + "|" + r.Params.Encode()
}

// Binding pairs a paginated resource with its page cursor and fetch state.
// Whether it may fetch is decided by the caller on every call to Want; the
// binding itself only remembers what it has loaded and what is in flight.
type Binding[T any] struct {
	resource    Resource
	hash        string
	result      Result[[]T]
	pager       Pager
	loadedKey   string
	inflightKey string
}

// NewBinding creates a binding that shows seed until its first response.
func NewBinding[T any](resource Resource, seed []T) *Binding[T] {
	return &Binding[T]{
		resource: resource,
		result:   Placeholder(seed),
		pager:    NewPager(),
	}
}

// Resource returns the bound resource name.
func (b *Binding[T]) Resource() Resource {
	return b.resource
}

// Reset retargets the binding at a new hash, dropping data and cursors.
func (b *Binding[T]) Reset(hash string, seed []T) {
	b.hash = hash
	b.result = Placeholder(seed)
	b.pager.Reset()
	b.loadedKey = ""
	b.inflightKey = ""
}

// Reseed replaces the placeholder rows while no real data has arrived.
func (b *Binding[T]) Reseed(seed []T) {
	if b.result.IsPlaceholderData {
		b.result.Data = seed
	}
}

// current returns the request for the current hash and page.
func (b *Binding[T]) current() Request {
	return Request{Resource: b.resource, Hash: b.hash, Params: b.pager.Current()}
}

// Want returns the request to issue when the binding is enabled and the
// current page is neither loaded nor in flight.
func (b *Binding[T]) Want(enabled bool) (Request, bool) {
	if !enabled || b.hash == "" {
		return Request{}, false
	}
	req := b.current()
	key := req.Key()
	if key == b.loadedKey || key == b.inflightKey {
		return Request{}, false
	}
	b.inflightKey = key
	b.result = b.result.Begin()
	return req, true
}

// Receive applies a response. Responses for a page or hash the binding no
// longer points at are discarded and Receive returns false.
func (b *Binding[T]) Receive(req Request, page Page[T], err error) bool {
	key := req.Key()
	if key == b.inflightKey {
		b.inflightKey = ""
	}
	if key != b.current().Key() {
		return false
	}

	b.loadedKey = key
	if err != nil {
		b.result = b.result.Fail(err)
		return true
	}
	b.result = b.result.Resolve(page.Items)
	b.pager.Observe(page.NextPageParams)
	return true
}

// Invalidate forces the current page to be fetched again on the next Want.
func (b *Binding[T]) Invalidate() {
	b.loadedKey = ""
}

// Result returns the query state of the current page.
func (b *Binding[T]) Result() Result[[]T] {
	return b.result
}

// InFlight reports whether a request for the current page is outstanding.
func (b *Binding[T]) InFlight() bool {
	return b.inflightKey != "" && b.inflightKey == b.current().Key()
}

// NextPage moves to the next page if one exists.
func (b *Binding[T]) NextPage() bool {
	if !b.pager.Next() {
		return false
	}
	b.result.IsLoading = false
	return true
}

// PrevPage moves to the previous page if one exists.
func (b *Binding[T]) PrevPage() bool {
	if !b.pager.Prev() {
		return false
	}
	b.result.IsLoading = false
	return true
}

// Pagination returns the descriptor for page chrome.
func (b *Binding[T]) Pagination() Pagination {
	return Pagination{
		Page:           b.pager.Page(),
		HasNextPage:    b.pager.HasNextPage(),
		CanGoBackwards: b.pager.CanGoBackwards(),
		IsLoading:      b.InFlight(),
		IsVisible:      b.pager.IsVisible(),
	}
}
