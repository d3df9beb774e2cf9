package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Nothing survives the process, but
// Watch behaves like the file store: every Set notifies the watchers.
type ConfigStore struct {
	mu       sync.RWMutex
	values   map[string]any
	watchers map[int]func()
	nextID   int
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		values:   make(map[string]any),
		watchers: make(map[int]func()),
	}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt accepts the integer and float types a TOML round trip or a test
// might have stored.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Set stores value, then runs every active watcher outside the lock.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	watchers := slices.Collect(maps.Values(s.watchers))
	s.mu.Unlock()

	for _, fn := range watchers {
		fn()
	}
	return nil
}

func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Load is a no-op; the map is the only copy.
func (s *ConfigStore) Load() error { return nil }

// Watch registers onChange until ctx is done.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	if onChange != nil {
		s.mu.Lock()
		id := s.nextID
		s.nextID++
		s.watchers[id] = onChange
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		}()
	}
	<-ctx.Done()
	return nil
}

func (s *ConfigStore) Path() string { return ":memory:" }
