package driven

import "context"

// ConfigStore is a flat key/value view over persisted settings. Keys are
// dotted paths such as "github.token".
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	// GetString returns the value under key as a string, or "".
	GetString(key string) string

	// GetInt returns the value under key as an int, or 0 when it is missing
	// or not numeric.
	GetInt(key string) int

	// Set stores value under key and persists the whole store.
	Set(key string, value any) error

	// Keys lists the stored keys, sorted.
	Keys() []string

	// Load replaces the in-memory values with what is persisted.
	Load() error

	// Watch reloads on every change to the backing file and then calls
	// onChange. It returns when ctx is done.
	Watch(ctx context.Context, onChange func()) error

	// Path names where the store persists to.
	Path() string
}
