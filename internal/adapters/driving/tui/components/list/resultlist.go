// Package list renders search hits as a scrollable, selectable list.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// ResultList shows repositories with a cursor. While a page is loading a
// trailing row says so.
type ResultList struct {
	repos    []domain.Repository
	selected int
	loading  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View draws the visible window of repositories, two lines each, keeping
// the selection on screen.
func (r *ResultList) View() string {
	if len(r.repos) == 0 {
		if r.loading {
			return r.styles.Muted.Render("Loading...")
		}
		return r.styles.Muted.Render("No results")
	}

	first, last := r.window()
	lines := make([]string, 0, 2*(last-first)+3)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Repositories (%d)", len(r.repos))), "")
	for i := first; i < last; i++ {
		lines = append(lines, r.renderRepository(i))
	}
	if r.loading {
		lines = append(lines, r.styles.Muted.Render("  Loading..."))
	}
	return strings.Join(lines, "\n")
}

// window returns the half-open range of rows that fit below the header.
func (r *ResultList) window() (first, last int) {
	rows := max((r.height-4)/2, 1)
	if r.selected >= rows {
		first = r.selected - rows + 1
	}
	return first, min(first+rows, len(r.repos))
}

func (r *ResultList) renderRepository(i int) string {
	repo := r.repos[i]
	width := max(r.width-6, 10)

	prefix, style := "  ", r.styles.Normal
	if i == r.selected {
		prefix, style = "> ", r.styles.Selected
	}
	name := style.Render(prefix + truncate(repo.FullName, width))
	return name + "\n    " + r.styles.Link.Render(truncate(repo.URL, width))
}

// truncate cuts s to at most width terminal cells, ending in "...".
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "...")
}

// SetRepositories replaces the list contents. The selection is kept when
// the list only grew, which is the case after a page is appended, and
// reset otherwise.
func (r *ResultList) SetRepositories(repos []domain.Repository) {
	grew := len(repos) >= len(r.repos) && len(r.repos) > 0 &&
		domain.SameRepositories(repos[:len(r.repos)], r.repos)
	r.repos = repos
	if !grew {
		r.selected = 0
	}
	if r.selected >= len(r.repos) {
		r.selected = max(len(r.repos)-1, 0)
	}
}

// Repositories returns the current list contents.
func (r *ResultList) Repositories() []domain.Repository {
	return r.repos
}

// SetLoading toggles the loading row.
func (r *ResultList) SetLoading(loading bool) {
	r.loading = loading
}

// Loading reports whether the loading row is shown.
func (r *ResultList) Loading() bool {
	return r.loading
}

// Selected returns the index of the selected repository.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.repos) {
		r.selected = index
	}
}

// SelectedRepository returns the currently selected repository, or nil if none.
func (r *ResultList) SelectedRepository() *domain.Repository {
	if len(r.repos) == 0 || r.selected < 0 || r.selected >= len(r.repos) {
		return nil
	}
	repo := r.repos[r.selected]
	return &repo
}

// AtEnd reports whether the last repository is selected.
func (r *ResultList) AtEnd() bool {
	return len(r.repos) > 0 && r.selected == len(r.repos)-1
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.repos)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of repositories.
func (r *ResultList) Count() int {
	return len(r.repos)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.repos) == 0
}
