package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Empty(t, s.RepositoryDir)
	assert.Equal(t, 4, s.Concurrency)
	assert.Equal(t, 60*time.Second, s.Timeout)
	assert.Zero(t, s.RequestsPerSecond)
	assert.True(t, s.HistoryEnabled)
}

// TestSettings_Normalise tests out-of-range values fall back to defaults
func TestSettings_Normalise(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		expected Settings
	}{
		{
			name:     "valid values are kept",
			settings: Settings{RepositoryDir: "/repo", Concurrency: 8, Timeout: time.Second, RequestsPerSecond: 2},
			expected: Settings{RepositoryDir: "/repo", Concurrency: 8, Timeout: time.Second, RequestsPerSecond: 2},
		},
		{
			name:     "zero concurrency uses default",
			settings: Settings{Concurrency: 0, Timeout: time.Second},
			expected: Settings{Concurrency: 4, Timeout: time.Second},
		},
		{
			name:     "negative timeout uses default",
			settings: Settings{Concurrency: 1, Timeout: -time.Second},
			expected: Settings{Concurrency: 1, Timeout: 60 * time.Second},
		},
		{
			name:     "negative rate disables throttling",
			settings: Settings{Concurrency: 1, Timeout: time.Second, RequestsPerSecond: -1},
			expected: Settings{Concurrency: 1, Timeout: time.Second},
		},
		{
			name:     "history flag is untouched",
			settings: Settings{Concurrency: 1, Timeout: time.Second, HistoryEnabled: true},
			expected: Settings{Concurrency: 1, Timeout: time.Second, HistoryEnabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.Normalise())
		})
	}
}
