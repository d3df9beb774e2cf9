package input

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/styles"
)

func typeRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewSearchInput(t *testing.T) {
	input := NewSearchInput(styles.DefaultStyles())

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.True(t, input.Focused())
	assert.NotNil(t, input.Init())

	input = NewSearchInput(nil)
	assert.NotNil(t, input.styles)
}

func TestSearchInput_UpdateValue(t *testing.T) {
	input := NewSearchInput(nil)

	changed, _ := input.UpdateValue(typeRunes("go"))
	assert.True(t, changed)
	assert.Equal(t, "go", input.Value())

	// Cursor movement does not change the text
	changed, _ = input.UpdateValue(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed)

	changed, _ = input.UpdateValue(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, changed)
}

func TestSearchInput_BlurredIgnoresKeys(t *testing.T) {
	input := NewSearchInput(nil)
	input.Blur()
	assert.False(t, input.Focused())

	changed, _ := input.UpdateValue(typeRunes("x"))
	assert.False(t, changed)
	assert.Equal(t, "", input.Value())

	input.Focus()
	input, _ = input.Update(typeRunes("x"))
	assert.Equal(t, "x", input.Value())
}

func TestSearchInput_CharLimit(t *testing.T) {
	input := NewSearchInput(nil)

	input.UpdateValue(typeRunes(strings.Repeat("a", MaxQueryLength+10)))

	assert.Len(t, input.Value(), MaxQueryLength)
}

func TestSearchInput_SetValueAndView(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetValue("language:go")

	view := input.View()
	assert.Contains(t, view, "Query:")
	assert.Contains(t, view, "language:go")
}

func TestSearchInput_SetWidth(t *testing.T) {
	input := NewSearchInput(nil)

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 88, input.field.Width)

	input.SetWidth(10)
	assert.Equal(t, 20, input.field.Width)
}

func TestSearchInput_Query(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetValue("  cobra cli ")

	assert.Equal(t, "  cobra cli ", input.Value())
	assert.Equal(t, "cobra cli", input.Query())
}
