package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. https://api.github.com/.
	BaseURL string

	// PerPage is the number of items requested per page.
	PerPage int

	// RequestsPerMinute bounds the proactive request rate.
	RequestsPerMinute int
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.AppSettings) Config {
	s = s.Normalise()
	return Config{
		BaseURL:           s.BaseURL,
		PerPage:           s.PerPage,
		RequestsPerMinute: s.RequestsPerMinute,
	}
}

// baseURL parses BaseURL, adding the trailing slash go-github requires.
func (c Config) baseURL() (*url.URL, error) {
	raw := c.BaseURL
	if raw == "" {
		raw = domain.DefaultGitHubBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q: %w", c.BaseURL, domain.ErrInvalidInput)
	}
	return u, nil
}
