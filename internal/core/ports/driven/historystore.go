package driven

import (
	"context"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// InstallHistoryStore persists the outcome of install runs.
// History is informational; it never influences resolution.
type InstallHistoryStore interface {
	// Append stores the records of one run.
	Append(ctx context.Context, records []domain.InstallRecord) error

	// Latest returns the most recent record of every artifact, sorted by name.
	Latest(ctx context.Context) ([]domain.InstallRecord, error)

	// ListRun returns the records of a single run, sorted by name.
	// Returns domain.ErrNotFound if the run is unknown.
	ListRun(ctx context.Context, runID string) ([]domain.InstallRecord, error)
}
