package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoReactor indicates that no search reactor was provided.
	ErrNoReactor = errors.New("search reactor is required")

	// ErrNoActionService indicates that result actions are unavailable.
	ErrNoActionService = errors.New("result actions are not available")
)
