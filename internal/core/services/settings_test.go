package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/octopus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/octopus/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("repository.path", "/srv/repository")
	_ = store.Set("install.concurrency", int64(8))
	_ = store.Set("http.timeout_seconds", int64(15))
	_ = store.Set("http.requests_per_second", 2.5)
	_ = store.Set("history.enabled", false)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.Settings{
		RepositoryDir:     "/srv/repository",
		Concurrency:       8,
		Timeout:           15 * time.Second,
		RequestsPerSecond: 2.5,
		HistoryEnabled:    false,
	}, *settings)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("install.concurrency", int64(-3))
	_ = store.Set("http.timeout_seconds", "soon")
	_ = store.Set("http.requests_per_second", -1.0)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Concurrency, settings.Concurrency)
	assert.Equal(t, defaults.Timeout, settings.Timeout)
	assert.Zero(t, settings.RequestsPerSecond)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.Settings{
		RepositoryDir:     "/srv/repository",
		Concurrency:       2,
		Timeout:           90 * time.Second,
		RequestsPerSecond: 0.5,
		HistoryEnabled:    false,
	}
	require.NoError(t, service.Save(&want))

	assert.Equal(t, int64(2), mustGet(t, store, "install.concurrency"))
	assert.Equal(t, int64(90), mustGet(t, store, "http.timeout_seconds"))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected any
	}{
		{"repository.path", "/srv/repository", "/srv/repository"},
		{"install.concurrency", "12", int64(12)},
		{"http.timeout_seconds", "30", int64(30)},
		{"http.requests_per_second", "1.5", 1.5},
		{"http.requests_per_second", "0", 0.0},
		{"history.enabled", "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			require.NoError(t, service.Set(tt.key, tt.value))
			assert.Equal(t, tt.expected, mustGet(t, store, tt.key))
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"install.concurrency", "0"},
		{"install.concurrency", "many"},
		{"http.timeout_seconds", "-5"},
		{"http.requests_per_second", "-1"},
		{"http.requests_per_second", "fast"},
		{"history.enabled", "sometimes"},
		{"search.mode", "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			_, exists := store.Get(tt.key)
			assert.False(t, exists)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	assert.Equal(t, []string{
		"repository.path",
		"install.concurrency",
		"http.timeout_seconds",
		"http.requests_per_second",
		"history.enabled",
	}, keys)

	// Callers cannot modify the package list.
	keys[0] = "changed"
	assert.Equal(t, "repository.path", service.Keys()[0])
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}

func mustGet(t *testing.T, store *memory.ConfigStore, key string) any {
	t.Helper()
	val, ok := store.Get(key)
	require.True(t, ok, "missing key %s", key)
	return val
}
