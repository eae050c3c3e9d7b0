// Package mcp provides an MCP (Model Context Protocol) server adapter for Octopus.
// It lets AI assistants resolve and install a project's knowledge artifacts.
package mcp

import "errors"

// Errors returned when a required port is not provided.
var (
	ErrMissingInstaller     = errors.New("mcp: installer is required")
	ErrMissingCatalogLoader = errors.New("mcp: catalog loader is required")
	ErrMissingProjectLoader = errors.New("mcp: configuration loader is required")
)
