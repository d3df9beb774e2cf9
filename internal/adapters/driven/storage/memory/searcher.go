package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
)

// Ensure Searcher implements the interface.
var _ driven.RepositorySearcher = (*Searcher)(nil)

// Searcher is an in-memory driven.RepositorySearcher over a fixed set of
// repositories. A query matches a repository when every whitespace
// separated term is a substring of its full name under Unicode case folding.
// It follows the same paging rules as the GitHub searcher.
type Searcher struct {
	mu      sync.RWMutex
	repos   []domain.Repository
	perPage int
	err     error
	calls   int
}

// NewSearcher creates a searcher serving repos perPage at a time.
func NewSearcher(perPage int, repos ...domain.Repository) *Searcher {
	if perPage <= 0 {
		perPage = domain.DefaultPerPage
	}
	return &Searcher{
		repos:   append([]domain.Repository(nil), repos...),
		perPage: perPage,
	}
}

// Add appends repositories to the index.
func (s *Searcher) Add(repos ...domain.Repository) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos = append(s.repos, repos...)
}

// FailWith makes every following non-empty search fail with err.
// Pass nil to recover.
func (s *Searcher) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls returns how many non-empty searches were served.
func (s *Searcher) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// SearchRepositories returns one page of matching repositories.
func (s *Searcher) SearchRepositories(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	terms := strings.Fields(fold(query))
	if len(terms) == 0 {
		return domain.SearchPage{Repositories: []domain.Repository{}}, nil
	}
	if err := ctx.Err(); err != nil {
		return domain.SearchPage{}, err
	}
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.calls++
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return domain.SearchPage{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Repository
	for _, r := range s.repos {
		if matches(r, terms) {
			matched = append(matched, r)
		}
	}

	start := (page - 1) * s.perPage
	if start >= len(matched) {
		return domain.SearchPage{Repositories: []domain.Repository{}}, nil
	}
	end := min(start+s.perPage, len(matched))

	items := append([]domain.Repository(nil), matched[start:end]...)
	return domain.SearchPage{Repositories: items, NextPage: page + 1}, nil
}

// fold returns the case folded form of s. A Caser keeps state, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func matches(r domain.Repository, terms []string) bool {
	name := fold(r.FullName)
	for _, t := range terms {
		if !strings.Contains(name, t) {
			return false
		}
	}
	return true
}
