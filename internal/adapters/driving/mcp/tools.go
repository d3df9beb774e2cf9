package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// SearchInput is the input schema for the search_repositories tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"GitHub repository search query, qualifiers such as language:go are allowed"`
	Page  int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
}

// SearchOutput is the output schema for the search_repositories tool.
type SearchOutput struct {
	Repositories []RepositoryOutput `json:"repositories"`
	NextPage     int                `json:"next_page,omitempty"`
}

// RepositoryOutput represents a single repository.
type RepositoryOutput struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	URL      string `json:"url"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_repositories",
		Description: "Search GitHub repositories. Returns one page of results; " +
			"pass next_page back as page to continue.",
	}, s.handleSearch)
}

// handleSearch handles the search_repositories tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, SearchOutput{}, fmt.Errorf("query is required: %w", domain.ErrInvalidInput)
	}

	page := input.Page
	if page <= 0 {
		page = 1
	}

	log.Debug("search_repositories query=%q page=%d", query, page)

	result, err := s.ports.Search.Search(ctx, query, page)
	if err != nil {
		if errors.Is(err, domain.ErrLimitExceeded) {
			return nil, SearchOutput{}, fmt.Errorf("GitHub API rate limit exceeded, wait 60 seconds and try again: %w", err)
		}
		return nil, SearchOutput{}, err
	}

	return nil, toSearchOutput(result), nil
}

func toSearchOutput(result domain.SearchPage) SearchOutput {
	output := SearchOutput{
		Repositories: make([]RepositoryOutput, len(result.Repositories)),
		NextPage:     result.NextPage,
	}
	for i, repo := range result.Repositories {
		output.Repositories[i] = RepositoryOutput{
			ID:       repo.ID,
			FullName: repo.FullName,
			URL:      repo.URL,
		}
	}
	return output
}
