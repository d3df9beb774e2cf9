package services

import (
	"slices"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// Mutation is a granular state delta produced while handling an action.
// The concrete types are SetQuery, SetRepositories, AppendRepositories,
// SetLoading and SetLimitExceeded.
type Mutation interface {
	isMutation()
}

// SetQuery replaces the current query.
type SetQuery struct {
	Query string
}

// SetRepositories replaces the result list and the page cursor.
type SetRepositories struct {
	Repositories []domain.Repository
	NextPage     int
}

// AppendRepositories appends to the result list and replaces the cursor.
type AppendRepositories struct {
	Repositories []domain.Repository
	NextPage     int
}

// SetLoading toggles the in-flight flag.
type SetLoading struct {
	Loading bool
}

// SetLimitExceeded toggles the rate limit flag.
type SetLimitExceeded struct {
	Exceeded bool
}

func (SetQuery) isMutation()           {}
func (SetRepositories) isMutation()    {}
func (AppendRepositories) isMutation() {}
func (SetLoading) isMutation()         {}
func (SetLimitExceeded) isMutation()   {}

// Reduce folds a mutation into state and returns the new state.
// It never modifies slices reachable from the input state, so earlier
// snapshots stay valid.
func Reduce(state domain.SearchState, m Mutation) domain.SearchState {
	switch m := m.(type) {
	case SetQuery:
		state.Query = m.Query
	case SetRepositories:
		state.Repositories = slices.Clone(m.Repositories)
		if state.Repositories == nil {
			state.Repositories = []domain.Repository{}
		}
		state.NextPage = m.NextPage
	case AppendRepositories:
		repos := make([]domain.Repository, 0, len(state.Repositories)+len(m.Repositories))
		repos = append(repos, state.Repositories...)
		state.Repositories = append(repos, m.Repositories...)
		state.NextPage = m.NextPage
	case SetLoading:
		state.IsLoading = m.Loading
	case SetLimitExceeded:
		state.IsLimitExceeded = m.Exceeded
	}
	return state
}
