package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
	"github.com/custodia-labs/reposearch/internal/logger"
)

// Ensure RepositorySearchService implements the interface.
var _ driving.RepositorySearchService = (*RepositorySearchService)(nil)

// RepositorySearchService fetches result pages without keeping state.
type RepositorySearchService struct {
	searcher driven.RepositorySearcher
}

// NewRepositorySearchService creates a new search service.
func NewRepositorySearchService(searcher driven.RepositorySearcher) *RepositorySearchService {
	return &RepositorySearchService{searcher: searcher}
}

// Search returns the requested page for query.
func (s *RepositorySearchService) Search(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	if s.searcher == nil {
		return domain.SearchPage{}, domain.ErrSearchUnavailable
	}
	if page < 1 {
		return domain.SearchPage{}, fmt.Errorf("page %d: %w", page, domain.ErrInvalidInput)
	}

	query = strings.TrimSpace(query)
	logger.Debug("Search: query=%q page=%d", query, page)

	result, err := s.searcher.SearchRepositories(ctx, query, page)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("search page %d: %w", page, err)
	}

	logger.Debug("Search: %d repositories, next page %d", len(result.Repositories), result.NextPage)
	return result, nil
}

// SearchPages fetches consecutive pages until maxPages have been read or
// pagination is exhausted. Results from pages read before a failure are
// returned together with the error.
func (s *RepositorySearchService) SearchPages(
	ctx context.Context, query string, maxPages int,
) (domain.SearchPage, error) {
	if maxPages < 1 {
		return domain.SearchPage{}, fmt.Errorf("max pages %d: %w", maxPages, domain.ErrInvalidInput)
	}

	logger.Section("Repository Search")

	combined := domain.SearchPage{Repositories: []domain.Repository{}, NextPage: 1}
	for read := 0; read < maxPages && combined.HasNextPage(); read++ {
		page, err := s.Search(ctx, query, combined.NextPage)
		if err != nil {
			return combined, err
		}
		combined.Repositories = append(combined.Repositories, page.Repositories...)
		combined.NextPage = page.NextPage
	}

	logger.Info("Fetched %d repositories", len(combined.Repositories))
	return combined, nil
}
