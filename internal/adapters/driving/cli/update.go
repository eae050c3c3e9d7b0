package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/octopus/internal/adapters/driving/watch"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install the artifacts a project requires",
	Long: `Resolves every artifact the project configuration requires, including
transitive requirements, and installs them into the knowledge directory.

Resolution errors (unknown references, unknown versions, an invalid
configuration) stop the run before anything is written. A single artifact
that cannot be fetched or converted is reported and the rest are installed.
Use --strict to exit non-zero when any artifact failed.

With --watch the install runs again whenever the configuration file changes,
until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	addProjectFlags(updateCmd)
	updateCmd.Flags().IntP("jobs", "j", 0, "artifacts installed in parallel (overrides install.concurrency)")
	updateCmd.Flags().Duration("timeout", 0, "per-download timeout, e.g. 30s (overrides http.timeout_seconds)")
	updateCmd.Flags().BoolP("watch", "w", false, "re-run whenever the configuration file changes")
	updateCmd.Flags().Bool("strict", false, "exit non-zero if any artifact failed")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	if projectLoader == nil || newInstaller == nil {
		return errors.New("install services not configured")
	}

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	catalog, err := catalogLoader(settings)
	if err != nil {
		return err
	}
	installer := newInstaller(settings)

	configPath, _ := cmd.Flags().GetString("config")
	strict, _ := cmd.Flags().GetBool("strict")
	watching, _ := cmd.Flags().GetBool("watch")

	run := func(ctx context.Context) error {
		return updateOnce(ctx, cmd, installer, catalog, configPath, strict)
	}

	if !watching {
		return run(cmd.Context())
	}

	w := watch.NewWatcher()
	w.OnError = func(err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	cmd.Printf("Watching %s, press Ctrl+C to stop.\n", configPath)
	return w.Run(cmd.Context(), configPath, run)
}

// updateOnce loads the configuration and catalog and runs one install.
func updateOnce(
	ctx context.Context,
	cmd *cobra.Command,
	installer driving.Installer,
	loader driven.CatalogLoader,
	configPath string,
	strict bool,
) error {
	cfg, err := projectLoader.Load(configPath)
	if err != nil {
		return err
	}

	catalog, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	report, err := installer.Install(ctx, cfg, catalog)
	if report != nil {
		newReportPrinter(cmd.OutOrStdout()).printReport(cfg.Name, report)
	}
	if err != nil {
		return err
	}

	if strict {
		return report.Err()
	}
	return nil
}
