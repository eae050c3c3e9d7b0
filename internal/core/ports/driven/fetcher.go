package driven

import (
	"context"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// Fetcher materialises a resolved artifact inside the knowledge directory.
type Fetcher interface {
	// Fetch copies or downloads req.File to <knowledgeDir>/<vendor>/<project>.<ext>.
	//
	// It returns (nil, nil) when req.File is neither an existing local file
	// nor a URI. It returns an error wrapping domain.ErrUnsupportedFormat,
	// without writing anything, when no format can be determined.
	Fetch(ctx context.Context, req domain.ResolvedRequirement, knowledgeDir string) (*domain.LocalArtifact, error)
}
