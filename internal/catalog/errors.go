package catalog

import "errors"

var (
	// ErrUnknownCatalog indicates a (language, topic) pair with no
	// registered source URL.
	ErrUnknownCatalog = errors.New("unknown catalog")

	// ErrMalformedReference indicates a row whose source reference cannot
	// yield a two-segment content id. It usually means the upstream
	// spreadsheet schema changed.
	ErrMalformedReference = errors.New("malformed source reference")
)
