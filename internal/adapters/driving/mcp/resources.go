package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for reposearch resources.
	uriScheme = "reposearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective search settings (the token is never included)",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search",
		Description: "First page of repositories matching a query",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

// handleSettingsResource returns the non-secret settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return jsonResult(req.Params.URI, "{}"), nil
	}

	type settingsInfo struct {
		BaseURL           string `json:"base_url"`
		PerPage           int    `json:"per_page"`
		RequestsPerMinute int    `json:"requests_per_minute"`
		DebounceMillis    int64  `json:"debounce_ms"`
	}

	settings := s.ports.Settings.Get()
	data, err := json.MarshalIndent(settingsInfo{
		BaseURL:           settings.BaseURL,
		PerPage:           settings.PerPage,
		RequestsPerMinute: settings.RequestsPerMinute,
		DebounceMillis:    settings.Debounce.Milliseconds(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleSearchResource returns the first result page for the query in the URI.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Search.Search(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	data, err := json.MarshalIndent(toSearchOutput(result), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling repositories: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractQuery extracts the decoded query from a URI like reposearch://search/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(query)
}
