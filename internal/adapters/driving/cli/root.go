// Package cli implements the octopus command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
	"github.com/custodia-labs/octopus/internal/logger"
)

// version is set at build time.
var version = "dev"

var verbose bool

// Services injected by the entry point. Commands check for nil.
var (
	settingsService   driving.SettingsService
	historyService    driving.HistoryService
	projectLoader     driven.ConfigurationLoader
	newCatalogLoader  func(repository string) driven.CatalogLoader
	newInstaller      func(settings domain.Settings) driving.Installer
	defaultRepository string
)

// Services bundles everything the commands need.
type Services struct {
	Settings driving.SettingsService

	// History is optional. Nil disables `status`.
	History driving.HistoryService

	Projects driven.ConfigurationLoader

	// NewCatalogLoader builds a loader for a repository directory.
	NewCatalogLoader func(repository string) driven.CatalogLoader

	// NewInstaller builds an installer from the effective settings,
	// after command line flags have been applied.
	NewInstaller func(settings domain.Settings) driving.Installer

	// DefaultRepository is used when neither settings nor flags name one.
	DefaultRepository string
}

var rootCmd = &cobra.Command{
	Use:   "octopus",
	Short: "Install the knowledge artifacts a project depends on",
	Long: `Octopus resolves the vocabularies and ontologies declared in a project's
octopus.json against a local catalog, copies or downloads them into the
project's knowledge directory and optionally converts them all to one RDF
serialization.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// SetServices wires the core services into the commands.
func SetServices(s Services) {
	settingsService = s.Settings
	historyService = s.History
	projectLoader = s.Projects
	newCatalogLoader = s.NewCatalogLoader
	newInstaller = s.NewInstaller
	defaultRepository = s.DefaultRepository
}

// SetVersion sets the version reported by `octopus version`.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
