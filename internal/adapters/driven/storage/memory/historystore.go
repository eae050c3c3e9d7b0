package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
)

// Ensure InstallHistoryStore implements the interface.
var _ driven.InstallHistoryStore = (*InstallHistoryStore)(nil)

// InstallHistoryStore is an in-memory implementation of driven.InstallHistoryStore.
// Records are kept in append order.
type InstallHistoryStore struct {
	mu      sync.RWMutex
	records []domain.InstallRecord
}

// NewInstallHistoryStore creates a new in-memory install history store.
func NewInstallHistoryStore() *InstallHistoryStore {
	return &InstallHistoryStore{}
}

// Append stores the records of one run.
func (s *InstallHistoryStore) Append(_ context.Context, records []domain.InstallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// Latest returns the most recent record of every artifact, sorted by name.
func (s *InstallHistoryStore) Latest(_ context.Context) ([]domain.InstallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[string]domain.InstallRecord)
	for _, r := range s.records {
		latest[r.Name] = r
	}

	result := make([]domain.InstallRecord, 0, len(latest))
	for _, r := range latest {
		result = append(result, r)
	}
	sortRecords(result)
	return result, nil
}

// ListRun returns the records of a single run, sorted by name.
func (s *InstallHistoryStore) ListRun(_ context.Context, runID string) ([]domain.InstallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.InstallRecord
	for _, r := range s.records {
		if r.RunID == runID {
			result = append(result, r)
		}
	}
	if len(result) == 0 {
		return nil, domain.ErrNotFound
	}
	sortRecords(result)
	return result, nil
}

func sortRecords(records []domain.InstallRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
}
