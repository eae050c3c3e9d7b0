package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the artifacts a project requires",
	Long: `Prints the full requirement closure of the project configuration:
every artifact it requires directly or transitively, with its format and
source file. Nothing is downloaded or written.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	addProjectFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	if projectLoader == nil || newInstaller == nil {
		return errors.New("install services not configured")
	}

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	loader, err := catalogLoader(settings)
	if err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := projectLoader.Load(configPath)
	if err != nil {
		return err
	}

	catalog, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}

	resolved, err := newInstaller(settings).Resolve(cmd.Context(), cfg, catalog)
	if err != nil {
		return err
	}

	newReportPrinter(cmd.OutOrStdout()).printResolved(cfg.Name, resolved)
	return nil
}
