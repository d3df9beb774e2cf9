package tui

import "errors"

var (
	// ErrInvalidPorts means NewApp was given nil ports.
	ErrInvalidPorts = errors.New("tui: invalid ports configuration")

	// ErrMissingSearchReactor means Ports.Reactor was nil.
	ErrMissingSearchReactor = errors.New("tui: search reactor is required")
)
