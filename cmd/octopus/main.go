// Package main provides the octopus binary entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	catalogfile "github.com/custodia-labs/octopus/internal/adapters/driven/catalog/file"
	"github.com/custodia-labs/octopus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/octopus/internal/adapters/driven/fetch"
	"github.com/custodia-labs/octopus/internal/adapters/driven/rdf"
	"github.com/custodia-labs/octopus/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/octopus/internal/adapters/driving/cli"
	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
	"github.com/custodia-labs/octopus/internal/core/services"
	"github.com/custodia-labs/octopus/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	homeDir, err := file.DefaultHomeDir()
	if err != nil {
		return fmt.Errorf("locating home directory: %w", err)
	}

	configStore, err := file.NewConfigStore(homeDir)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	var history driven.InstallHistoryStore
	if settings.HistoryEnabled {
		store, err := sqlite.NewStore(filepath.Join(homeDir, "data"))
		if err != nil {
			// History is optional, installs still work without it.
			logger.Warn("Install history unavailable: %v", err)
		} else {
			defer store.Close()
			history = store.InstallHistoryStore()
		}
	}

	var historyService driving.HistoryService
	if history != nil {
		historyService = services.NewHistoryService(history)
	}

	codec := rdf.NewCodec()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Settings: settingsService,
		History:  historyService,
		Projects: file.NewProjectLoader(),
		NewCatalogLoader: func(repository string) driven.CatalogLoader {
			return catalogfile.NewLoader(repository)
		},
		NewInstaller: func(s domain.Settings) driving.Installer {
			fetcher := fetch.NewFetcher(fetch.Options{
				Timeout:           s.Timeout,
				RequestsPerSecond: s.RequestsPerSecond,
				UserAgent:         "octopus/" + version,
			})
			return services.NewInstaller(fetcher, services.NewConverter(codec), history, s.Concurrency)
		},
		DefaultRepository: filepath.Join(homeDir, "repository"),
	})

	return cli.Execute(ctx)
}
