package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme prefixes every Octopus resource URI.
const uriScheme = "octopus://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "Every artifact in the catalog with its declared versions",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "installed",
		Name:        "installed",
		Description: "The most recent install outcome of every artifact",
		MIMEType:    "application/json",
	}, s.handleInstalledResource)
}

// handleCatalogResource lists the catalog.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	catalog, err := s.ports.Catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	type entryInfo struct {
		Name     string   `json:"name"`
		Versions []string `json:"versions"`
	}

	names := catalog.Names()
	infos := make([]entryInfo, 0, len(names))
	for _, name := range names {
		entry, _ := catalog.Lookup(name)
		infos = append(infos, entryInfo{
			Name:     name,
			Versions: entry.Versions.Labels(),
		})
	}

	return jsonResult(req.Params.URI, infos)
}

// handleInstalledResource returns the latest install record of every artifact.
func (s *Server) handleInstalledResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type installedInfo struct {
		Name        string    `json:"name"`
		Status      string    `json:"status"`
		Path        string    `json:"path,omitempty"`
		Format      string    `json:"format,omitempty"`
		Hash        string    `json:"hash,omitempty"`
		Message     string    `json:"message,omitempty"`
		RunID       string    `json:"run_id"`
		InstalledAt time.Time `json:"installed_at"`
	}

	infos := []installedInfo{}
	if s.ports.History != nil {
		records, err := s.ports.History.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading install history: %w", err)
		}
		for _, record := range records {
			infos = append(infos, installedInfo{
				Name:        record.Name,
				Status:      string(record.Status),
				Path:        record.Path,
				Format:      record.Format.String(),
				Hash:        record.Hash,
				Message:     record.Message,
				RunID:       record.RunID,
				InstalledAt: record.InstalledAt,
			})
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// jsonResult wraps v as a single JSON resource content.
func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
