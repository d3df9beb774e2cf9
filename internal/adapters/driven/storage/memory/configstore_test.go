package memory

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set(domain.KeyGitHubToken, "ghp_abc"))
	require.NoError(t, store.Set(domain.KeyPerPage, int64(50)))
	require.NoError(t, store.Set(domain.KeyDebounceMillis, 250))

	assert.Equal(t, "ghp_abc", store.GetString(domain.KeyGitHubToken))
	assert.Equal(t, 50, store.GetInt(domain.KeyPerPage))
	assert.Equal(t, 250, store.GetInt(domain.KeyDebounceMillis))

	// Wrong types and missing keys
	assert.Equal(t, "", store.GetString(domain.KeyPerPage))
	assert.Equal(t, 0, store.GetInt(domain.KeyGitHubToken))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("search.per_page", 1))
	require.NoError(t, store.Set("github.token", "t"))

	assert.Equal(t, []string{"github.token", "search.per_page"}, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Watch(t *testing.T) {
	store := NewConfigStore()

	ctx, cancel := context.WithCancel(context.Background())
	var changes atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Watch(ctx, func() { changes.Add(1) })
	}()

	require.Eventually(t, func() bool {
		_ = store.Set(domain.KeyGitHubToken, "x")
		return changes.Load() > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	before := changes.Load()
	require.NoError(t, store.Set(domain.KeyGitHubToken, "y"))
	assert.Equal(t, before, changes.Load())
}
