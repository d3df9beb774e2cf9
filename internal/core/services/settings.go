package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// intKeys lists the configuration keys holding integers.
var intKeys = map[string]bool{
	domain.KeyPerPage:           true,
	domain.KeyRequestsPerMinute: true,
	domain.KeyDebounceMillis:    true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the current settings with defaults applied.
func (s *SettingsService) Get() domain.AppSettings {
	settings := domain.AppSettings{
		BaseURL:           s.configStore.GetString(domain.KeyGitHubBaseURL),
		PerPage:           s.configStore.GetInt(domain.KeyPerPage),
		RequestsPerMinute: s.configStore.GetInt(domain.KeyRequestsPerMinute),
		Debounce:          domain.DefaultDebounce,
	}
	if _, ok := s.configStore.Get(domain.KeyDebounceMillis); ok {
		settings.Debounce = time.Duration(s.configStore.GetInt(domain.KeyDebounceMillis)) * time.Millisecond
	}
	return settings.Normalise()
}

// SetToken stores the GitHub access token.
func (s *SettingsService) SetToken(token string) error {
	return s.configStore.Set(domain.KeyGitHubToken, token)
}

// Set stores a raw configuration value after validating the key.
func (s *SettingsService) Set(key, value string) error {
	switch {
	case intKeys[key]:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer: %w", key, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, int64(n))
	case key == domain.KeyGitHubToken, key == domain.KeyGitHubBaseURL:
		return s.configStore.Set(key, value)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Values returns every stored key and value, with the token masked.
func (s *SettingsService) Values() map[string]string {
	values := make(map[string]string)
	for _, key := range s.configStore.Keys() {
		val, _ := s.configStore.Get(key)
		str := fmt.Sprint(val)
		if key == domain.KeyGitHubToken {
			str = maskToken(str)
		}
		values[key] = str
	}
	return values
}

// maskToken keeps the last four characters of a token.
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
