package driving

import "github.com/custodia-labs/octopus/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by its config key, parsing value
	// according to the key's type.
	Set(key, value string) error

	// Keys returns the supported config keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
