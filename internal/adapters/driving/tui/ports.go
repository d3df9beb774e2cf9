// Package tui is the interactive search screen. It renders the reactor's
// state and turns keystrokes into reactor actions; it never calls the
// search backend itself.
package tui

import (
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
)

// Ports are the core services the TUI talks to.
type Ports struct {
	// Reactor drives the query, pagination and rate limit state.
	Reactor driving.SearchReactor

	// ResultAction opens and copies repositories. Optional; without it
	// those keys report an error in the status bar.
	ResultAction driving.ResultActionService

	// Settings supplies the debounce interval. Optional.
	Settings driving.SettingsService
}

// NewPorts bundles the services for NewApp.
func NewPorts(
	reactor driving.SearchReactor,
	resultAction driving.ResultActionService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Reactor:      reactor,
		ResultAction: resultAction,
		Settings:     settings,
	}
}

// Validate fails when ports is nil or has no reactor.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Reactor == nil {
		return ErrMissingSearchReactor
	}
	return nil
}
