// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is a colour palette. The defaults follow GitHub's dark scheme.
type Theme struct {
	Primary    lipgloss.Color // titles, selection background
	Secondary  lipgloss.Color // headers, links
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color // rate limit banner
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color // status bar background
}

// DefaultTheme returns the dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    "#2F81F7",
		Secondary:  "#58A6FF",
		Foreground: "#E6EDF3",
		Muted:      "#7D8590",
		Success:    "#3FB950",
		Warning:    "#D29922",
		Error:      "#F85149",
		Border:     "#30363D",
		Bar:        "#161B22",
	}
}

// Styles are the rendered styles shared by every component.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Link       lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Banner     lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Link:     fg(theme.Secondary).Underline(true),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Error:    fg(theme.Error),
		Warning:  fg(theme.Warning),
		Help:     fg(theme.Muted),

		Banner: fg(theme.Warning).Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Warning).
			Padding(0, 1),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

func (s *Styles) Theme() *Theme {
	return s.theme
}
