// Package query models the client-side state of remote explorer resources:
// a single query result seeded with placeholder data, keyset page cursors,
// and paginated resource bindings whose fetches are gated by an enable flag.
//
// Nothing in this package performs I/O. Callers ask a Binding what it needs
// fetched, run the request themselves, and feed the response back in.
package query

// Resource names one remote explorer resource.
type Resource string

// Resources used by the token page.
const (
	ResourceToken          Resource = "token"
	ResourceAddress        Resource = "address"
	ResourceTokenTransfers Resource = "token_transfers"
	ResourceTokenHolders   Resource = "token_holders"
	ResourceTokenInventory Resource = "token_inventory"
)

// Result is the state of one query. While IsPlaceholderData is set, Data holds
// the seed passed to Placeholder rather than a server response.
type Result[T any] struct {
	Data              T
	IsLoading         bool
	IsPlaceholderData bool
	IsError           bool
	Err               error
	resolved          bool
}

// Placeholder returns a pending result that displays seed until resolved.
func Placeholder[T any](seed T) Result[T] {
	return Result[T]{Data: seed, IsPlaceholderData: true}
}

// Begin marks the query as in flight.
func (r Result[T]) Begin() Result[T] {
	r.IsLoading = true
	return r
}

// Resolve stores a successful response.
func (r Result[T]) Resolve(data T) Result[T] {
	return Result[T]{Data: data, resolved: true}
}

// Fail records a failed fetch. The previous data (real or placeholder) is
// kept for display but is no longer flagged as placeholder.
func (r Result[T]) Fail(err error) Result[T] {
	r.IsLoading = false
	r.IsPlaceholderData = false
	r.IsError = true
	r.Err = err
	return r
}

// Ready reports whether the query holds a real server response.
func (r Result[T]) Ready() bool {
	return r.resolved && !r.IsError
}
