package mcp

import (
	"context"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// mockInstaller implements driving.Installer for testing.
type mockInstaller struct {
	resolved   []domain.ResolvedRequirement
	report     *domain.InstallReport
	err        error
	lastConfig *domain.Configuration
}

func (m *mockInstaller) Resolve(_ context.Context, cfg *domain.Configuration, _ *domain.Catalog) ([]domain.ResolvedRequirement, error) {
	m.lastConfig = cfg
	if m.err != nil {
		return nil, m.err
	}
	return m.resolved, nil
}

func (m *mockInstaller) Install(_ context.Context, cfg *domain.Configuration, _ *domain.Catalog) (*domain.InstallReport, error) {
	m.lastConfig = cfg
	return m.report, m.err
}

// mockCatalogLoader implements driven.CatalogLoader for testing.
type mockCatalogLoader struct {
	catalog *domain.Catalog
	err     error
}

func (m *mockCatalogLoader) Load(_ context.Context) (*domain.Catalog, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.catalog == nil {
		return domain.NewCatalog()
	}
	return m.catalog, nil
}

// mockProjectLoader implements driven.ConfigurationLoader for testing.
type mockProjectLoader struct {
	cfg      *domain.Configuration
	err      error
	lastPath string
}

func (m *mockProjectLoader) Load(path string) (*domain.Configuration, error) {
	m.lastPath = path
	if m.err != nil {
		return nil, m.err
	}
	return m.cfg, nil
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	records []domain.InstallRecord
	err     error
}

func (m *mockHistoryService) Latest(_ context.Context) ([]domain.InstallRecord, error) {
	return m.records, m.err
}

func (m *mockHistoryService) Run(_ context.Context, _ string) ([]domain.InstallRecord, error) {
	return m.records, m.err
}

// validPorts returns ports with every required field set.
func validPorts() *Ports {
	return &Ports{
		Installer: &mockInstaller{},
		Catalog:   &mockCatalogLoader{},
		Projects:  &mockProjectLoader{cfg: &domain.Configuration{Name: "demo"}},
	}
}
