package driven

import (
	"context"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// CatalogLoader builds the catalog of known artifacts.
// The returned Catalog is immutable and safe to share between goroutines.
type CatalogLoader interface {
	// Load reads every descriptor and returns the catalog.
	// A missing repository yields an empty catalog, not an error.
	Load(ctx context.Context) (*domain.Catalog, error)
}

// ConfigurationLoader reads a project configuration file.
type ConfigurationLoader interface {
	// Load parses and validates the configuration at path.
	// Any failure is reported as a *domain.InvalidConfigurationError.
	Load(path string) (*domain.Configuration, error)
}
