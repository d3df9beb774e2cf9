// Package status renders the one-line footer under the result list.
package status

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/styles"
)

// State selects the left-hand label of the bar.
type State int

const (
	StateReady State = iota
	StateLoading
	StateLimited
	StateError
	StateHelp
	StateResults
)

// Bar shows what the search is doing on the left and key hints on the right.
// It holds no logic of its own; the search view pushes values into it.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int

	state     State
	message   string
	count     int
	morePages bool
}

// NewBar returns an 80 column bar in StateReady.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: 80}
}

func (b *Bar) View() string {
	left, right := b.status(), b.hints()
	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) status() string {
	if b.state == StateError {
		if b.message == "" {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + b.message)
	}

	var label string
	switch b.state {
	case StateLoading:
		label = b.styles.Muted.Render("Loading...")
	case StateLimited:
		label = b.styles.Warning.Render("Rate limited")
	case StateHelp:
		label = b.styles.Normal.Render("Help")
	default:
		label = b.styles.Muted.Render("Ready")
		if b.count > 0 {
			label = b.styles.Normal.Render(b.countLabel())
		}
	}

	if b.message != "" {
		label += b.styles.Muted.Render("  " + b.message)
	}
	return label
}

// countLabel reads "30+ repositories" while more pages may follow.
func (b *Bar) countLabel() string {
	n := strconv.Itoa(b.count)
	if b.morePages {
		n += "+"
	}
	return n + " repositories"
}

func (b *Bar) hints() string {
	bindings := b.keymap.ShortHelp()
	if b.state == StateResults && b.count > 0 {
		bindings = b.keymap.ResultsHelp()
	}
	return b.styles.Muted.Render(joinHelp(bindings))
}

func joinHelp(bindings []key.Binding) string {
	var sb strings.Builder
	for i, kb := range bindings {
		if i > 0 {
			sb.WriteString(" | ")
		}
		h := kb.Help()
		sb.WriteString(h.Key + ": " + h.Desc)
	}
	return sb.String()
}

func (b *Bar) SetState(state State) { b.state = state }
func (b *Bar) State() State         { return b.state }

// SetMessage sets a transient note shown after the state label.
func (b *Bar) SetMessage(message string) { b.message = message }
func (b *Bar) Message() string           { return b.message }

// SetResultCount records how many repositories are listed and whether
// another page may follow.
func (b *Bar) SetResultCount(count int, morePages bool) {
	b.count, b.morePages = count, morePages
}

func (b *Bar) ResultCount() int { return b.count }

func (b *Bar) SetWidth(width int) { b.width = width }
func (b *Bar) Width() int         { return b.width }

// Clear returns the bar to StateReady with no count or message.
func (b *Bar) Clear() {
	b.state, b.message = StateReady, ""
	b.SetResultCount(0, false)
}
