package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is one saved comparison.
type Run struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	OldLabel         string    `json:"old_label"`
	NewLabel         string    `json:"new_label"`
	NewEntities      int       `json:"new_entities"`
	RemovedEntities  int       `json:"removed_entities"`
	ModifiedEntities int       `json:"modified_entities"`
	Report           []byte    `json:"-"` // canonical JSON report
}

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// SaveRun inserts a comparison run. Duplicate ids are rejected.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, old_label, new_label, new_entities, removed_entities, modified_entities, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.OldLabel,
		run.NewLabel,
		run.NewEntities,
		run.RemovedEntities,
		run.ModifiedEntities,
		run.Report,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// ListRuns returns saved runs, newest first, ties broken by id for
// deterministic output. Report blobs are not loaded.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, old_label, new_label, new_entities, removed_entities, modified_entities
		FROM runs
		ORDER BY created_at DESC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(
			&run.ID, &createdAt, &run.OldLabel, &run.NewLabel,
			&run.NewEntities, &run.RemovedEntities, &run.ModifiedEntities,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches one saved run including its report blob.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, old_label, new_label, new_entities, removed_entities, modified_entities, report
		FROM runs
		WHERE id = ?
	`, id).Scan(
		&run.ID, &createdAt, &run.OldLabel, &run.NewLabel,
		&run.NewEntities, &run.RemovedEntities, &run.ModifiedEntities, &run.Report,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return &run, nil
}
