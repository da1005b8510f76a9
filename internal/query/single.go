package query

// Single is an unpaginated resource keyed by an address hash, such as the
// token itself or its contract address info.
type Single[T any] struct {
	resource    Resource
	hash        string
	result      Result[T]
	seed        T
	loadedKey   string
	inflightKey string
}

// NewSingle creates a query that shows seed until its first response.
func NewSingle[T any](resource Resource, seed T) *Single[T] {
	return &Single[T]{resource: resource, seed: seed, result: Placeholder(seed)}
}

// Reset retargets the query at a new hash and restores the placeholder.
func (s *Single[T]) Reset(hash string) {
	s.hash = hash
	s.result = Placeholder(s.seed)
	s.loadedKey = ""
	s.inflightKey = ""
}

// Want returns the request to issue when the query is enabled and has not
// loaded or started loading its current hash.
func (s *Single[T]) Want(enabled bool) (Request, bool) {
	if !enabled || s.hash == "" {
		return Request{}, false
	}
	req := Request{Resource: s.resource, Hash: s.hash}
	key := req.Key()
	if key == s.loadedKey || key == s.inflightKey {
		return Request{}, false
	}
	s.inflightKey = key
	s.result = s.result.Begin()
	return req, true
}

// Receive applies a response, dropping it when the hash has since changed.
func (s *Single[T]) Receive(req Request, data T, err error) bool {
	if req.Resource != s.resource || req.Hash != s.hash {
		return false
	}
	s.inflightKey = ""
	s.loadedKey = req.Key()
	if err != nil {
		s.result = s.result.Fail(err)
		return true
	}
	s.result = s.result.Resolve(data)
	return true
}

// Invalidate forces a refetch on the next Want.
func (s *Single[T]) Invalidate() {
	s.loadedKey = ""
}

// Result returns the query state.
func (s *Single[T]) Result() Result[T] {
	return s.result
}
