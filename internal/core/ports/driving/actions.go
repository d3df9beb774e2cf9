package driving

import (
	"context"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// ResultActionService acts on a single search hit.
type ResultActionService interface {
	// CopyURL puts repo.URL on the system clipboard.
	CopyURL(ctx context.Context, repo *domain.Repository) error

	// OpenRepository hands repo.URL to the platform browser launcher.
	OpenRepository(ctx context.Context, repo *domain.Repository) error
}
