package file

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".reposearch", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(domain.KeyGitHubToken, "ghp_abc"))

	val, ok := store.Get(domain.KeyGitHubToken)
	assert.True(t, ok)
	assert.Equal(t, "ghp_abc", val)

	val, ok = store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(domain.KeyGitHubBaseURL, "https://ghe.example.com/api/v3/"))
	assert.Equal(t, "https://ghe.example.com/api/v3/", store.GetString(domain.KeyGitHubBaseURL))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set(domain.KeyPerPage, int64(50)))
	assert.Equal(t, "", store.GetString(domain.KeyPerPage))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(domain.KeyPerPage, int64(50)))
	assert.Equal(t, 50, store.GetInt(domain.KeyPerPage))

	require.NoError(t, store.Set(domain.KeyDebounceMillis, 250))
	assert.Equal(t, 250, store.GetInt(domain.KeyDebounceMillis))

	// Non-existent key
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set(domain.KeyGitHubToken, "not an int"))
	assert.Equal(t, 0, store.GetInt(domain.KeyGitHubToken))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set(domain.KeyGitHubToken, "ghp_abc"))
	require.NoError(t, store1.Set(domain.KeyPerPage, int64(50)))
	require.NoError(t, store1.Set(domain.KeyRequestsPerMinute, int64(10)))

	// Create new store instance - should load from file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ghp_abc", store2.GetString(domain.KeyGitHubToken))
	assert.Equal(t, 50, store2.GetInt(domain.KeyPerPage))
	assert.Equal(t, 10, store2.GetInt(domain.KeyRequestsPerMinute))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("github.token", "ghp_abc"))
	require.NoError(t, store.Set("search.per_page", int64(20)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[github]")
	assert.Contains(t, content, "[search]")
	assert.NotContains(t, content, "'github.token'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[github]
token = "ghp_handwritten"
base_url = "https://ghe.example.com/api/v3/"

[search]
per_page = 100

[tui]
debounce_ms = 300
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ghp_handwritten", store.GetString(domain.KeyGitHubToken))
	assert.Equal(t, "https://ghe.example.com/api/v3/", store.GetString(domain.KeyGitHubBaseURL))
	assert.Equal(t, 100, store.GetInt(domain.KeyPerPage))
	assert.Equal(t, 300, store.GetInt(domain.KeyDebounceMillis))
	assert.Equal(t, []string{
		domain.KeyGitHubBaseURL,
		domain.KeyGitHubToken,
		domain.KeyPerPage,
		domain.KeyDebounceMillis,
	}, store.Keys())
}

func TestConfigStore_Keys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.Keys())

	require.NoError(t, store.Set("b.key", "1"))
	require.NoError(t, store.Set("a.key", "2"))

	assert.Equal(t, []string{"a.key", "b.key"}, store.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(domain.KeyGitHubToken, "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	// Store should handle empty file gracefully
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "search.key" + strconv.Itoa(id)
			_ = store.Set(key, int64(id))
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

// TestNewConfigStore_MkdirAllError tests error handling when directory creation fails
func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	corruptedContent := []byte("this is not valid TOML {{{[[")
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), corruptedContent, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestConfigStore_Save_WriteFileError tests error handling when WriteFile fails
func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test.key", "value"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another.key", "value"))
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"github": map[string]any{"token": "t"},
		"search": map[string]any{"per_page": int64(20)},
		"top":    "level",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"github.token":    "t",
		"search.per_page": int64(20),
		"top":             "level",
	}, flat)

	assert.Equal(t, nested, nestMap(flat))
}

func TestConfigStore_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(domain.KeyGitHubToken, "before"))

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 16)
	watchDone := make(chan error, 1)
	go func() {
		watchDone <- store.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Another process edits the file. Keep writing until the watcher,
	// which starts asynchronously, reports the change.
	other, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_ = other.Set(domain.KeyGitHubToken, "after")
		select {
		case <-changed:
			return store.GetString(domain.KeyGitHubToken) == "after"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-watchDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestConfigStore_WatchMissingDir(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(tmpDir))

	err = store.Watch(context.Background(), nil)
	assert.Error(t, err)
}

func TestConfigStore_MemMapFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewConfigStoreFs(fs, "/cfg")
	require.NoError(t, err)
	assert.Equal(t, "/cfg/config.toml", store.Path())

	require.NoError(t, store.Set(domain.KeyGitHubBaseURL, "https://ghe.example.com/api/v3/"))
	require.NoError(t, store.Set(domain.KeyPerPage, int64(10)))

	data, err := afero.ReadFile(fs, "/cfg/config.toml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "[github]")
	assert.Contains(t, string(data), "per_page = 10")

	// No temp files are left behind
	entries, err := afero.ReadDir(fs, "/cfg")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	reopened, err := NewConfigStoreFs(fs, "/cfg")
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", reopened.GetString(domain.KeyGitHubBaseURL))
	assert.Equal(t, 10, reopened.GetInt(domain.KeyPerPage))
}

func TestConfigStore_WatchUnsupportedFs(t *testing.T) {
	store, err := NewConfigStoreFs(afero.NewMemMapFs(), "/cfg")
	require.NoError(t, err)

	err = store.Watch(context.Background(), nil)

	assert.ErrorIs(t, err, ErrWatchUnsupported)
}

func TestConfigStore_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/cfg/config.toml", []byte("[search]\nper_page = 40\n"), 0600))

	store, err := NewConfigStoreFs(afero.NewReadOnlyFs(base), "/cfg")
	require.NoError(t, err)
	assert.Equal(t, 40, store.GetInt(domain.KeyPerPage))

	assert.Error(t, store.Set(domain.KeyPerPage, int64(50)))
	assert.Equal(t, 40, store.GetInt(domain.KeyPerPage), "failed write keeps the stored value")

	assert.Error(t, store.Set(domain.KeyGitHubToken, "ghp_x"))
	_, ok := store.Get(domain.KeyGitHubToken)
	assert.False(t, ok, "failed write does not add the key")
	assert.Equal(t, []string{domain.KeyPerPage}, store.Keys())
}
