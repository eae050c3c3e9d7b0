package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installed artifacts",
	Long: `Shows the most recent install outcome of every artifact from the install
history. Use --run to list the outcomes of a single install run.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().String("run", "", "show one install run by ID")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("install history is disabled, enable it with 'octopus settings set history.enabled true'")
	}

	runID, _ := cmd.Flags().GetString("run")

	var (
		records []domain.InstallRecord
		err     error
	)
	if runID != "" {
		records, err = historyService.Run(cmd.Context(), runID)
	} else {
		records, err = historyService.Latest(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to read install history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("Nothing installed yet. Run 'octopus update' first.")
		return nil
	}

	newReportPrinter(cmd.OutOrStdout()).printRecords(records)
	return nil
}
