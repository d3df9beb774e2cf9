package driven

import (
	"context"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// RepositorySearcher fetches pages of repository search results.
//
// Implementations must honour the following contract:
//   - An empty query returns an empty page with no next page and makes no
//     network call.
//   - A non-empty page returns NextPage = page + 1.
//   - An empty page returns NextPage = domain.NoNextPage.
//   - Quota exhaustion fails with an error matching domain.ErrLimitExceeded.
//   - Any other failure returns a generic error.
type RepositorySearcher interface {
	// SearchRepositories returns the given 1-based page for query.
	SearchRepositories(ctx context.Context, query string, page int) (domain.SearchPage, error)
}
