package auth

import (
	"context"
	"os"
	"strings"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
)

// EnvGitHubToken is the environment variable that overrides the stored token.
const EnvGitHubToken = "GITHUB_TOKEN"

// Ensure PATProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*PATProvider)(nil)

// PATProvider provides a static Personal Access Token.
// The token is read from GITHUB_TOKEN when set, otherwise from the
// github.token config key. It is looked up on every call so a token saved
// with "config token" or picked up by ConfigStore.Watch applies at once.
// PATs don't expire and don't require refresh.
type PATProvider struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewPATProvider creates a token provider backed by configStore.
func NewPATProvider(configStore driven.ConfigStore) *PATProvider {
	return &PATProvider{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// GetToken returns the PAT token, or "" when none is configured.
func (p *PATProvider) GetToken(_ context.Context) (string, error) {
	return p.token(), nil
}

// IsAuthenticated returns true if a non-empty token is configured.
func (p *PATProvider) IsAuthenticated() bool {
	return p.token() != ""
}

// Source reports where the token comes from: "env", "config" or "".
func (p *PATProvider) Source() string {
	if strings.TrimSpace(p.getenv(EnvGitHubToken)) != "" {
		return "env"
	}
	if p.configStore != nil && strings.TrimSpace(p.configStore.GetString(domain.KeyGitHubToken)) != "" {
		return "config"
	}
	return ""
}

func (p *PATProvider) token() string {
	if env := strings.TrimSpace(p.getenv(EnvGitHubToken)); env != "" {
		return env
	}
	if p.configStore == nil {
		return ""
	}
	return strings.TrimSpace(p.configStore.GetString(domain.KeyGitHubToken))
}
