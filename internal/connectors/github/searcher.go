package github

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
)

// Ensure Searcher implements the interface.
var _ driven.RepositorySearcher = (*Searcher)(nil)

// Searcher adapts Client to the RepositorySearcher port.
type Searcher struct {
	client *Client
}

// NewSearcher creates a searcher backed by client.
func NewSearcher(client *Client) *Searcher {
	return &Searcher{client: client}
}

// SearchRepositories fetches one page of results.
// A blank query returns an empty, exhausted page without touching the network.
// Queries are sent in NFC so decomposed input from some terminals matches.
func (s *Searcher) SearchRepositories(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	query = norm.NFC.String(strings.TrimSpace(query))
	if query == "" {
		return domain.SearchPage{Repositories: []domain.Repository{}}, nil
	}
	if page < 1 {
		page = 1
	}

	items, err := s.client.SearchRepositories(ctx, query, page)
	if err != nil {
		return domain.SearchPage{}, err
	}

	repos := make([]domain.Repository, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		repos = append(repos, toRepository(item))
	}

	result := domain.SearchPage{Repositories: repos, NextPage: domain.NoNextPage}
	if len(repos) > 0 {
		result.NextPage = page + 1
	}
	return result, nil
}

func toRepository(r *gh.Repository) domain.Repository {
	return domain.Repository{
		ID:       r.GetID(),
		FullName: r.GetFullName(),
		URL:      r.GetHTMLURL(),
	}
}
