// Package input holds the query box shown at the top of the search view.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/styles"
)

// MaxQueryLength is the longest query GitHub accepts.
const MaxQueryLength = 256

const (
	label         = "Query: "
	labelWidth    = 12 // label plus input border and padding
	minFieldWidth = 20
	startWidth    = 50
)

// SearchInput is a single-line query editor.
type SearchInput struct {
	field  textinput.Model
	styles *styles.Styles
	width  int
}

// NewSearchInput returns a focused, empty query box.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.Placeholder = "Search GitHub repositories (e.g. language:go stars:>100)"
	field.CharLimit = MaxQueryLength
	field.Width = startWidth
	field.Focus()

	return &SearchInput{field: field, styles: s, width: startWidth}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the underlying field.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.field, cmd = s.field.Update(msg)
	return s, cmd
}

// UpdateValue is Update that also reports whether the text was edited.
// Cursor movement and blink ticks report false.
func (s *SearchInput) UpdateValue(msg tea.Msg) (bool, tea.Cmd) {
	before := s.field.Value()
	_, cmd := s.Update(msg)
	return s.field.Value() != before, cmd
}

func (s *SearchInput) View() string {
	//nolint:misspell // lipgloss.Center is the library's spelling
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.styles.Title.Render(label),
		s.styles.InputField.Render(s.field.View()),
	)
}

// Value is the text exactly as typed.
func (s *SearchInput) Value() string {
	return s.field.Value()
}

// Query is the text with surrounding whitespace removed.
func (s *SearchInput) Query() string {
	return strings.TrimSpace(s.field.Value())
}

// SetValue replaces the text and moves the cursor to its end.
func (s *SearchInput) SetValue(value string) {
	s.field.SetValue(value)
	s.field.CursorEnd()
}

func (s *SearchInput) Focus() tea.Cmd {
	return s.field.Focus()
}

func (s *SearchInput) Blur() {
	s.field.Blur()
}

func (s *SearchInput) Focused() bool {
	return s.field.Focused()
}

// SetWidth fits the field into width columns next to the label.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.field.Width = max(width-labelWidth, minFieldWidth)
}

func (s *SearchInput) Width() int {
	return s.width
}
