package domain

import "errors"

// Sentinels shared across layers. Adapters wrap them in richer types, so
// compare with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSearchUnavailable = errors.New("search service unavailable")

	// ErrLimitExceeded means the search quota is spent. Waiting fixes it.
	ErrLimitExceeded = errors.New("rate limit exceeded")

	// ErrReactorClosed is returned by Send after Close.
	ErrReactorClosed = errors.New("reactor closed")

	// ErrAuthInvalid means the configured token was rejected.
	ErrAuthInvalid = errors.New("authentication invalid")
)
