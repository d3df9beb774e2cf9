package domain

// Repository is a single repository search hit.
// Two repositories are the same entity when their IDs match.
type Repository struct {
	// ID is the stable provider identifier.
	ID int64 `json:"id"`

	// FullName is the display name, e.g. "octocat/hello-world".
	FullName string `json:"full_name"`

	// URL is the web link for the repository.
	URL string `json:"url"`
}

// Equal reports whether r and other identify the same repository.
// Only the ID is compared.
func (r Repository) Equal(other Repository) bool {
	return r.ID == other.ID
}

// SameRepositories reports whether two result lists hold the same
// repositories in the same order, comparing by ID only.
// Views use it to skip redraws when a state change left the list untouched.
func SameRepositories(a, b []Repository) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// NoNextPage is the NextPage value meaning pagination is exhausted.
const NoNextPage = 0

// SearchPage is one page of repository search results.
type SearchPage struct {
	// Repositories holds the page items in relevance order.
	Repositories []Repository `json:"repositories"`

	// NextPage is the page to request next, or NoNextPage when the
	// result set is exhausted.
	NextPage int `json:"next_page,omitempty"`
}

// HasNextPage reports whether another page may be requested.
func (p SearchPage) HasNextPage() bool {
	return p.NextPage != NoNextPage
}
