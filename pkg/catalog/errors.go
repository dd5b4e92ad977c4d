package catalog

import "errors"

// Errors crossing the service boundary. Cache faults never do.
var (
	// ErrNotFound is returned when the requested product does not exist in the store.
	ErrNotFound = errors.New("product not found")

	// ErrInternal marks failures of administrative operations that have no safe fallback.
	ErrInternal = errors.New("internal error")
)
