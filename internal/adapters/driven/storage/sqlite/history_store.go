package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
)

// historyStore implements driven.InstallHistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.InstallHistoryStore = (*historyStore)(nil)

const historyColumns = "run_id, name, status, path, format, hash, message, installed_at"

// Append stores the records of one run in a single transaction.
func (s *historyStore) Append(ctx context.Context, records []domain.InstallRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO install_history ("+historyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		installedAt := r.InstalledAt
		if installedAt.IsZero() {
			installedAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, r.RunID, r.Name, string(r.Status), r.Path,
			string(r.Format), r.Hash, r.Message, installedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("inserting %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	return nil
}

// Latest returns the most recently appended record of every artifact.
func (s *historyStore) Latest(ctx context.Context) ([]domain.InstallRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM install_history h
		JOIN (SELECT name AS latest_name, MAX(id) AS latest_id FROM install_history GROUP BY name) latest
			ON h.id = latest.latest_id
		ORDER BY h.name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListRun returns the records of a single run.
func (s *historyStore) ListRun(ctx context.Context, runID string) ([]domain.InstallRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM install_history
		WHERE run_id = ?
		ORDER BY name
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	return records, nil
}

func scanRecords(rows *sql.Rows) ([]domain.InstallRecord, error) {
	var records []domain.InstallRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.InstallRecord
		var status, format, installedAt string
		if err := rows.Scan(&r.RunID, &r.Name, &status, &r.Path, &format,
			&r.Hash, &r.Message, &installedAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		r.Status = domain.InstallStatus(status)
		r.Format = domain.Format(format)

		t, err := time.Parse(time.RFC3339Nano, installedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing installed_at %q: %w", installedAt, err)
		}
		r.InstalledAt = t
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}
