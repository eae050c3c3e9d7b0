package driving

import (
	"context"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// Installer resolves a configuration against the catalog and installs
// the resulting artifacts.
type Installer interface {
	// Resolve returns the full requirement closure of cfg, sorted by name.
	// It has no side effects.
	Resolve(ctx context.Context, cfg *domain.Configuration, catalog *domain.Catalog) ([]domain.ResolvedRequirement, error)

	// Install resolves cfg and fetches, converts and records every artifact.
	// Resolution failures are returned before anything is written.
	// Per-artifact failures are recorded in the report.
	Install(ctx context.Context, cfg *domain.Configuration, catalog *domain.Catalog) (*domain.InstallReport, error)
}
