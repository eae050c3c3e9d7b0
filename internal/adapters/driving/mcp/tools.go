package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/octopus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/octopus/internal/core/domain"
)

// ProjectInput is the input schema for the resolve and update tools.
type ProjectInput struct {
	Config string `json:"config,omitempty" jsonschema:"path to the octopus.json configuration (default ./octopus.json)"`
}

// ResolveOutput is the output schema for the resolve tool.
type ResolveOutput struct {
	Requirements []RequirementOutput `json:"requirements"`
	Count        int                 `json:"count"`
}

// RequirementOutput is one artifact of the requirement closure.
type RequirementOutput struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	Format    string `json:"format,omitempty"`
	PrefixURI string `json:"prefix_uri,omitempty"`
}

// UpdateOutput is the output schema for the update tool.
type UpdateOutput struct {
	RunID   string                 `json:"run_id"`
	Summary string                 `json:"summary"`
	Partial bool                   `json:"partial,omitempty"`
	Results []domain.InstallResult `json:"results"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve",
		Description: "List every knowledge artifact a project requires, including transitive requirements",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update",
		Description: "Install the knowledge artifacts a project requires into its knowledge directory",
	}, s.handleUpdate)
}

// handleResolve handles the resolve tool invocation.
func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProjectInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	cfg, catalog, err := s.load(ctx, input.Config)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	resolved, err := s.ports.Installer.Resolve(ctx, cfg, catalog)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	output := ResolveOutput{
		Requirements: make([]RequirementOutput, len(resolved)),
		Count:        len(resolved),
	}
	for i, req := range resolved {
		output.Requirements[i] = RequirementOutput{
			Name:      req.Name,
			File:      req.File,
			Format:    req.Format.String(),
			PrefixURI: req.PrefixURI,
		}
	}

	return nil, output, nil
}

// handleUpdate handles the update tool invocation.
func (s *Server) handleUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProjectInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	cfg, catalog, err := s.load(ctx, input.Config)
	if err != nil {
		return nil, UpdateOutput{}, err
	}

	report, err := s.ports.Installer.Install(ctx, cfg, catalog)
	if report == nil {
		if err == nil {
			err = errors.New("installer returned no report")
		}
		return nil, UpdateOutput{}, err
	}

	output := UpdateOutput{
		RunID:   report.RunID,
		Summary: report.Summary(),
		Partial: report.Partial,
		Results: report.Results,
	}
	if output.Results == nil {
		output.Results = []domain.InstallResult{}
	}

	return nil, output, err
}

// load reads the project configuration and the catalog.
func (s *Server) load(ctx context.Context, path string) (*domain.Configuration, *domain.Catalog, error) {
	if path == "" {
		path = file.DefaultProjectFile
	}

	cfg, err := s.ports.Projects.Load(path)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := s.ports.Catalog.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	return cfg, catalog, nil
}
