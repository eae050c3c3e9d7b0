package driving

import (
	"context"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// HistoryService exposes past install runs.
type HistoryService interface {
	// Latest returns the most recent record of every installed artifact.
	Latest(ctx context.Context) ([]domain.InstallRecord, error)

	// Run returns the records of one install run.
	Run(ctx context.Context, runID string) ([]domain.InstallRecord, error)
}
