package mcp

import (
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Installer resolves and installs configurations.
	Installer driving.Installer

	// Catalog loads the artifact catalog.
	Catalog driven.CatalogLoader

	// Projects loads octopus.json files.
	Projects driven.ConfigurationLoader

	// History reports installed artifacts. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Installer == nil:
		return ErrMissingInstaller
	case p.Catalog == nil:
		return ErrMissingCatalogLoader
	case p.Projects == nil:
		return ErrMissingProjectLoader
	}
	return nil
}
