package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in ~/.octopus/config.toml.

Settings apply to every project. Flags passed to a command override them.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  repository.path            catalog repository directory
  install.concurrency        artifacts installed in parallel
  http.timeout_seconds       per-download timeout
  http.requests_per_second   download rate per host, 0 for unlimited
  history.enabled            record install runs (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	repository := settings.RepositoryDir
	if repository == "" {
		repository = fmt.Sprintf("%s (default)", defaultRepository)
	}

	rate := "unlimited"
	if settings.RequestsPerSecond > 0 {
		rate = fmt.Sprintf("%g", settings.RequestsPerSecond)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Repository]")
	cmd.Printf("  Path: %s\n", repository)
	cmd.Println()

	cmd.Println("[Install]")
	cmd.Printf("  Concurrency: %d\n", settings.Concurrency)
	cmd.Println()

	cmd.Println("[HTTP]")
	cmd.Printf("  Timeout: %s\n", settings.Timeout)
	cmd.Printf("  Requests per second: %s\n", rate)
	cmd.Println()

	cmd.Println("[History]")
	if settings.HistoryEnabled {
		cmd.Println("  Enabled: yes")
	} else {
		cmd.Println("  Enabled: no")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(settingsService.Keys(), ", "))
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}
