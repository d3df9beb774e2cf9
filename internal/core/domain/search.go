package domain

// SearchState is the single source of truth for rendering search results.
// Values handed to readers are snapshots; the Repositories slice of a
// snapshot is never modified afterwards.
type SearchState struct {
	// Query is the current query text. Empty means no query.
	Query string

	// Repositories holds accumulated results in relevance/append order.
	Repositories []Repository

	// NextPage is the cursor for the next page, NoNextPage when exhausted.
	NextPage int

	// IsLoading is true while a fetch for the current query is in flight.
	IsLoading bool

	// IsLimitExceeded is true when the last fetch hit the API rate limit.
	IsLimitExceeded bool
}

// HasNextPage reports whether a further page may be fetched.
func (s SearchState) HasNextPage() bool {
	return s.NextPage != NoNextPage
}

// CanLoadNextPage reports whether a LoadNextPage action would start a fetch.
func (s SearchState) CanLoadNextPage() bool {
	return s.HasNextPage() && !s.IsLoading && !s.IsLimitExceeded
}

// Action is an externally triggered intent consumed by the search reactor.
// The concrete types are InputQuery and LoadNextPage.
type Action interface {
	isAction()
}

// InputQuery is sent when the search text changes. An empty Query clears
// the results.
type InputQuery struct {
	Query string
}

// LoadNextPage is sent when the reader reaches the end of the list.
type LoadNextPage struct{}

func (InputQuery) isAction()   {}
func (LoadNextPage) isAction() {}
