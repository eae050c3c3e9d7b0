package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads install history.
type HistoryService struct {
	store driven.InstallHistoryStore
}

// NewHistoryService creates a new history service.
// The store is optional - if nil, there is no history to report.
func NewHistoryService(store driven.InstallHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Latest returns the most recent record of every artifact, sorted by name.
func (s *HistoryService) Latest(ctx context.Context) ([]domain.InstallRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.Latest(ctx)
}

// Run returns the records of one install run.
func (s *HistoryService) Run(ctx context.Context, runID string) ([]domain.InstallRecord, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}
	if s.store == nil {
		return nil, fmt.Errorf("run %s: %w", runID, domain.ErrNotFound)
	}
	return s.store.ListRun(ctx, runID)
}
