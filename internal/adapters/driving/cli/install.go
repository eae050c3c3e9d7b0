package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/octopus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
)

// addProjectFlags registers --config and --repository on cmd.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", file.DefaultProjectFile, "project configuration file")
	cmd.Flags().String("repository", "", "catalog repository directory (overrides repository.path)")
}

// effectiveSettings loads the stored settings and applies command line overrides.
func effectiveSettings(cmd *cobra.Command) (domain.Settings, error) {
	if settingsService == nil {
		return domain.Settings{}, errors.New("settings service not configured")
	}

	stored, err := settingsService.Get()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	settings := *stored

	flags := cmd.Flags()
	if flags.Changed("repository") {
		if settings.RepositoryDir, err = flags.GetString("repository"); err != nil {
			return domain.Settings{}, err
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if settings.Concurrency, err = flags.GetInt("jobs"); err != nil {
			return domain.Settings{}, err
		}
	}
	if flags.Lookup("timeout") != nil && flags.Changed("timeout") {
		var timeout time.Duration
		if timeout, err = flags.GetDuration("timeout"); err != nil {
			return domain.Settings{}, err
		}
		settings.Timeout = timeout
	}

	if settings.RepositoryDir == "" {
		settings.RepositoryDir = defaultRepository
	}
	return settings.Normalise(), nil
}

// catalogLoader returns the loader for the effective repository.
func catalogLoader(settings domain.Settings) (driven.CatalogLoader, error) {
	if newCatalogLoader == nil {
		return nil, errors.New("catalog loader not configured")
	}
	if settings.RepositoryDir == "" {
		return nil, errors.New("no catalog repository configured, pass --repository or set repository.path")
	}
	return newCatalogLoader(settings.RepositoryDir), nil
}
