package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRepositoryPath    = "repository.path"
	keyConcurrency       = "install.concurrency"
	keyTimeoutSeconds    = "http.timeout_seconds"
	keyRequestsPerSecond = "http.requests_per_second"
	keyHistoryEnabled    = "history.enabled"
)

// settingKeys lists the supported keys in display order.
var settingKeys = []string{
	keyRepositoryPath,
	keyConcurrency,
	keyTimeoutSeconds,
	keyRequestsPerSecond,
	keyHistoryEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or out-of-range
// values fall back to the defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		RepositoryDir:     s.configStore.GetString(keyRepositoryPath),
		Concurrency:       s.getInt(keyConcurrency, defaults.Concurrency),
		Timeout:           time.Duration(s.getInt(keyTimeoutSeconds, int(defaults.Timeout/time.Second))) * time.Second,
		RequestsPerSecond: s.getFloat(keyRequestsPerSecond, defaults.RequestsPerSecond),
		HistoryEnabled:    s.getBool(keyHistoryEnabled, defaults.HistoryEnabled),
	}.Normalise()

	return &settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	normalised := settings.Normalise()

	if err := s.configStore.Set(keyRepositoryPath, normalised.RepositoryDir); err != nil {
		return fmt.Errorf("save repository path: %w", err)
	}
	if err := s.configStore.Set(keyConcurrency, int64(normalised.Concurrency)); err != nil {
		return fmt.Errorf("save concurrency: %w", err)
	}
	if err := s.configStore.Set(keyTimeoutSeconds, int64(normalised.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save timeout: %w", err)
	}
	if err := s.configStore.Set(keyRequestsPerSecond, normalised.RequestsPerSecond); err != nil {
		return fmt.Errorf("save requests per second: %w", err)
	}
	if err := s.configStore.Set(keyHistoryEnabled, normalised.HistoryEnabled); err != nil {
		return fmt.Errorf("save history enabled: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	var parsed any

	switch key {
	case keyRepositoryPath:
		parsed = value
	case keyConcurrency, keyTimeoutSeconds:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = int64(n)
	case keyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = f
	case keyHistoryEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported config keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
