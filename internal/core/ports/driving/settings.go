package driving

import "github.com/custodia-labs/reposearch/internal/core/domain"

// SettingsService reads and edits configuration on behalf of the CLI.
type SettingsService interface {
	// Get resolves every setting, falling back to defaults for missing or
	// out of range values.
	Get() domain.AppSettings

	SetToken(token string) error

	// Set parses value for key and stores it. Unknown keys and values that
	// do not parse are rejected with domain.ErrInvalidInput.
	Set(key, value string) error

	// Values lists what is stored, token masked.
	Values() map[string]string
}
