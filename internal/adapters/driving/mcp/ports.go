package mcp

import (
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
)

// Ports are the core services the MCP server calls.
type Ports struct {
	// Search answers the search tool and the search resource.
	Search driving.RepositorySearchService

	// Settings backs reposearch://settings. Optional; without it the
	// resource is an empty object.
	Settings driving.SettingsService
}

// Validate fails when a required port is missing.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
