// Package mcp serves repository search over the Model Context Protocol, so
// assistants can query GitHub through the same services as the CLI.
package mcp

import "errors"

// ErrMissingSearchService means Ports.Search was nil.
var ErrMissingSearchService = errors.New("mcp: search service is required")
