package driving

import (
	"context"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// StateObserver receives search state snapshots.
// Observers run on the reactor's processing goroutine and must not block.
type StateObserver func(domain.SearchState)

// SearchReactor is the action intake and state stream used by views.
type SearchReactor interface {
	// Start launches action processing. Actions sent earlier are queued.
	// Once ctx ends the reactor behaves as if closed.
	Start(ctx context.Context)

	// Close cancels in-flight work and waits for it to finish.
	// Send fails with domain.ErrReactorClosed afterwards.
	Close() error

	// Send enqueues an action. Actions are processed in arrival order.
	Send(action domain.Action) error

	// State returns a snapshot of the current state.
	State() domain.SearchState

	// Subscribe registers an observer. The observer receives the current
	// state immediately and every state change afterwards. The returned
	// function removes the observer.
	Subscribe(observer StateObserver) (unsubscribe func())
}

// RepositorySearchService fetches single result pages for non-interactive
// surfaces such as the CLI and MCP server.
type RepositorySearchService interface {
	// Search returns the requested 1-based page for query.
	Search(ctx context.Context, query string, page int) (domain.SearchPage, error)

	// SearchPages fetches up to maxPages consecutive pages starting at page 1,
	// stopping early when pagination is exhausted.
	SearchPages(ctx context.Context, query string, maxPages int) (domain.SearchPage, error)
}
