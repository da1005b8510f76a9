package explorer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rshade/tokenscope/internal/query"
)

// Common explorer errors.
var (
	ErrEmptyBaseURL       = errors.New("explorer API URL cannot be empty")
	ErrInvalidHash        = errors.New("address hash is not a 20-byte hex address")
	ErrUnsupportedBackend = errors.New("explorer backend version is not supported")
)

// FetchError reports a failed request for a remote resource.
type FetchError struct {
	Resource   query.Resource
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Resource, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the explorer answered 404.
func (e *FetchError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// retryable reports whether a status code is worth retrying.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
