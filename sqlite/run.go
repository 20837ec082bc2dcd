package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/specstitch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ specstitch.RunService = (*RunService)(nil)

// RunService implements specstitch.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records the start of a crawl.
func (s *RunService) CreateRun(ctx context.Context, run *specstitch.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, start_url, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.StartURL, run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun records a crawl's end time and page outcome counts.
func (s *RunService) FinishRun(ctx context.Context, id string, used, skipped, failed int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, used = ?, skipped = ?, failed = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), used, skipped, failed, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return specstitch.Errorf(specstitch.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*specstitch.Run, error) {
	var run specstitch.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, start_url, started_at, finished_at, used, skipped, failed
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.StartURL, &startedAt, &finishedAt,
		&run.Used, &run.Skipped, &run.Failed)

	if err == sql.ErrNoRows {
		return nil, specstitch.Errorf(specstitch.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	if finishedAt != "" {
		run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at")
		if err != nil {
			return nil, err
		}
	}

	return &run, nil
}
