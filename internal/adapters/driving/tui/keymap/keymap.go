// Package keymap holds the TUI key bindings and their help text.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

var _ help.KeyMap = (*KeyMap)(nil)

// KeyMap groups the bindings of the search screen. Search and Back apply
// while typing; the rest apply while moving through results.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Search submits the query without waiting for the debounce.
	Search key.Binding

	Up   key.Binding
	Down key.Binding

	Open key.Binding
	Copy key.Binding

	// LoadMore asks for the next page without scrolling to the end.
	LoadMore key.Binding

	// NewSearch moves focus back to the query input.
	NewSearch key.Binding
}

func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// DefaultKeyMap returns vim-flavoured defaults.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      bind("q", "quit", "q", "ctrl+c"),
		Help:      bind("?", "help", "?"),
		Back:      bind("esc", "back", "esc"),
		Search:    bind("enter", "search", "enter"),
		Up:        bind("↑/k", "up", "up", "k"),
		Down:      bind("↓/j", "down", "down", "j"),
		Open:      bind("enter", "open", "enter", "o"),
		Copy:      bind("c", "copy url", "c"),
		LoadMore:  bind("m", "more", "m"),
		NewSearch: bind("/", "new search", "/", "n"),
	}
}

// ShortHelp lists the bindings that matter while typing a query.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Back, k.Help}
}

// ResultsHelp lists the bindings that matter once results have focus.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Open, k.Copy, k.NewSearch, k.Quit}
}

// FullHelp groups every binding into columns: navigation, result actions,
// then general keys.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.LoadMore},
		{k.Open, k.Copy, k.NewSearch},
		{k.Search, k.Back, k.Help, k.Quit},
	}
}

// Matches reports whether keyStr, as produced by tea.KeyMsg.String, is one
// of binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return keyStr != "" && slices.Contains(binding.Keys(), keyStr)
}
