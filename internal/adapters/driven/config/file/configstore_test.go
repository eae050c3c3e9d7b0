package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultHomeDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".octopus"), dir)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("repository.path", "/srv/repository"))

	val, ok := store.Get("repository.path")
	assert.True(t, ok)
	assert.Equal(t, "/srv/repository", val)

	_, ok = store.Get("missing.key")
	assert.False(t, ok)
}

// TestConfigStore_WritesNestedTables tests dotted keys become TOML tables on disk
func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("http.timeout_seconds", int64(30)))
	require.NoError(t, store.Set("http.requests_per_second", 2.5))
	require.NoError(t, store.Set("history.enabled", false))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[http]")
	assert.Contains(t, content, "timeout_seconds = 30")
	assert.Contains(t, content, "[history]")
	assert.NotContains(t, content, "http.timeout_seconds")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte(`
[repository]
path = "/srv/octopus/repository"

[install]
concurrency = 8

[http]
timeout_seconds = 15
requests_per_second = 2

[history]
enabled = false
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/octopus/repository", store.GetString("repository.path"))
	assert.Equal(t, 8, store.GetInt("install.concurrency"))
	assert.Equal(t, 15, store.GetInt("http.timeout_seconds"))
	assert.Equal(t, 2.0, store.GetFloat("http.requests_per_second"))
	assert.False(t, store.GetBool("history.enabled"))

	_, exists := store.Get("history.enabled")
	assert.True(t, exists)
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("install.concurrency", "eight"))

	assert.Zero(t, store.GetInt("install.concurrency"))
	assert.Zero(t, store.GetFloat("install.concurrency"))
	assert.False(t, store.GetBool("install.concurrency"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("repository.path", "/srv/repository"))
	require.NoError(t, store.Set("install.concurrency", int64(6)))
	require.NoError(t, store.Set("http.requests_per_second", 0.5))
	require.NoError(t, store.Set("history.enabled", true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/repository", store2.GetString("repository.path"))
	assert.Equal(t, 6, store2.GetInt("install.concurrency"))
	assert.InDelta(t, 0.5, store2.GetFloat("http.requests_per_second"), 0.00001)
	assert.True(t, store2.GetBool("history.enabled"))
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	corruptedContent := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), corruptedContent, 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestConfigStore_Save_WriteFileError tests error handling when WriteFile fails
func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("history.enabled", true))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Save())
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# settings\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("repository.path")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("install.concurrency", int64(i+1))
			_ = store.GetInt("install.concurrency")
		}()
	}
	wg.Wait()

	assert.Positive(t, store.GetInt("install.concurrency"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"http.timeout_seconds": int64(30),
		"history.enabled":      true,
		"top":                  "level",
	})

	assert.Equal(t, map[string]any{
		"http":    map[string]any{"timeout_seconds": int64(30)},
		"history": map[string]any{"enabled": true},
		"top":     "level",
	}, nested)
	assert.Equal(t, map[string]any{
		"http.timeout_seconds": int64(30),
		"history.enabled":      true,
		"top":                  "level",
	}, flattenMap(nested, ""))
}
