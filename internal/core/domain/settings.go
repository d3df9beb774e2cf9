package domain

import "time"

// Configuration keys understood by the config store.
const (
	KeyGitHubToken       = "github.token"
	KeyGitHubBaseURL     = "github.base_url"
	KeyPerPage           = "search.per_page"
	KeyRequestsPerMinute = "search.requests_per_minute"
	KeyDebounceMillis    = "tui.debounce_ms"
)

// Defaults applied when a key is unset.
const (
	DefaultGitHubBaseURL     = "https://api.github.com/"
	DefaultPerPage           = 30
	MaxPerPage               = 100
	DefaultRequestsPerMinute = 30
	DefaultDebounce          = 500 * time.Millisecond
)

// AppSettings holds the resolved application settings.
type AppSettings struct {
	// BaseURL is the GitHub API base URL.
	BaseURL string

	// PerPage is the number of repositories requested per page.
	PerPage int

	// RequestsPerMinute bounds the proactive request rate.
	RequestsPerMinute int

	// Debounce is how long the TUI waits after a keystroke before searching.
	Debounce time.Duration
}

// DefaultAppSettings returns settings with every default applied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		BaseURL:           DefaultGitHubBaseURL,
		PerPage:           DefaultPerPage,
		RequestsPerMinute: DefaultRequestsPerMinute,
		Debounce:          DefaultDebounce,
	}
}

// Normalise replaces out-of-range values with defaults.
func (s AppSettings) Normalise() AppSettings {
	if s.BaseURL == "" {
		s.BaseURL = DefaultGitHubBaseURL
	}
	if s.PerPage <= 0 {
		s.PerPage = DefaultPerPage
	}
	if s.PerPage > MaxPerPage {
		s.PerPage = MaxPerPage
	}
	if s.RequestsPerMinute <= 0 {
		s.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if s.Debounce < 0 {
		s.Debounce = DefaultDebounce
	}
	return s
}
