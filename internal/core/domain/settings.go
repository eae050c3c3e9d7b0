package domain

import "time"

// Settings holds application-level options, as opposed to the per-project
// Configuration. They come from ~/.octopus/config.toml and CLI flags.
type Settings struct {
	// RepositoryDir is the catalog root containing <vendor>/*.json descriptors.
	// Empty means the default under the Octopus home directory.
	RepositoryDir string

	// Concurrency bounds the number of artifacts fetched and converted at once.
	Concurrency int

	// Timeout bounds each download request.
	Timeout time.Duration

	// RequestsPerSecond throttles downloads per host. Zero disables throttling.
	RequestsPerSecond float64

	// HistoryEnabled records every install run in the history store.
	HistoryEnabled bool
}

// DefaultSettings returns the defaults used for any key missing from the settings file.
func DefaultSettings() Settings {
	return Settings{
		Concurrency:       4,
		Timeout:           60 * time.Second,
		RequestsPerSecond: 0,
		HistoryEnabled:    true,
	}
}

// Normalise replaces out-of-range values with defaults.
func (s Settings) Normalise() Settings {
	defaults := DefaultSettings()
	if s.Concurrency < 1 {
		s.Concurrency = defaults.Concurrency
	}
	if s.Timeout <= 0 {
		s.Timeout = defaults.Timeout
	}
	if s.RequestsPerSecond < 0 {
		s.RequestsPerSecond = 0
	}
	return s
}
