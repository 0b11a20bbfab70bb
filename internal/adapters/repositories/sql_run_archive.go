package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/platform/obs"
	"queue-sim-service/internal/ports"
)

// SQLRunArchive is a Postgres-backed implementation of the RunArchive
// port. Records are stored as JSONB.
type SQLRunArchive struct{ DB *sql.DB }

func NewSQLRunArchive(db *sql.DB) *SQLRunArchive {
	return &SQLRunArchive{DB: db}
}

// Persist a finished run. A zero CreatedAt is stamped by the database.
func (s *SQLRunArchive) SaveQueueRun(ctx context.Context, run *domain.QueueRun) (_ int64, err error) {
	defer obs.Time(ctx, "archive.SaveQueueRun")(&err)

	if s.DB == nil {
		return 0, errors.New("run archive: DB is nil")
	}
	if run == nil {
		return 0, errors.New("save queue run: run is nil")
	}

	records := run.Records
	if records == nil {
		records = []domain.CustomerRecord{}
	}
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("save queue run: marshal records: %w", err)
	}

	var seed sql.NullInt64
	if run.Seed != nil {
		seed = sql.NullInt64{Int64: *run.Seed, Valid: true}
	}

	query := `
	INSERT INTO queue_runs (
		customers, seed, mode, records,
		avg_wait, max_wait, total_idle, utilization, horizon_end
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id;
	`

	var id int64
	err = s.DB.QueryRowContext(ctx, query,
		run.Customers,
		seed,
		run.Mode,
		string(recordsJSON),
		run.Summary.AvgWait,
		run.Summary.MaxWait,
		run.Summary.TotalIdle,
		run.Summary.Utilization,
		run.Summary.HorizonEnd,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save queue run: insert queue_runs row: %w", err)
	}

	return id, nil
}

// List the most recent runs, newest first, without their records.
func (s *SQLRunArchive) ListRuns(ctx context.Context, limit int) (_ []domain.RunSummary, err error) {
	defer obs.Time(ctx, "archive.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("run archive: DB is nil")
	}
	if limit < 1 {
		return nil, fmt.Errorf("list runs: limit must be positive, got %d", limit)
	}

	query := `
	SELECT id, created_at, customers, mode,
		avg_wait, max_wait, total_idle, utilization, horizon_end
	FROM queue_runs
	ORDER BY created_at DESC, id DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query queue_runs table: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.RunSummary, 0, limit)
	for rows.Next() {
		var rs domain.RunSummary
		err := rows.Scan(
			&rs.ID,
			&rs.CreatedAt,
			&rs.Customers,
			&rs.Mode,
			&rs.Summary.AvgWait,
			&rs.Summary.MaxWait,
			&rs.Summary.TotalIdle,
			&rs.Summary.Utilization,
			&rs.Summary.HorizonEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		summaries = append(summaries, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return summaries, nil
}

// Retrieve one archived run with its full record sequence.
func (s *SQLRunArchive) GetRun(ctx context.Context, id int64) (_ *domain.QueueRun, err error) {
	defer obs.Time(ctx, "archive.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("run archive: DB is nil")
	}

	query := `
	SELECT id, created_at, customers, seed, mode, records,
		avg_wait, max_wait, total_idle, utilization, horizon_end
	FROM queue_runs
	WHERE id = $1;
	`

	var (
		run         domain.QueueRun
		seed        sql.NullInt64
		recordsJSON []byte
	)
	err = s.DB.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.CreatedAt,
		&run.Customers,
		&seed,
		&run.Mode,
		&recordsJSON,
		&run.Summary.AvgWait,
		&run.Summary.MaxWait,
		&run.Summary.TotalIdle,
		&run.Summary.Utilization,
		&run.Summary.HorizonEnd,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run id=%d: %w", id, ports.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run id=%d: scan row: %w", id, err)
	}

	if seed.Valid {
		v := seed.Int64
		run.Seed = &v
	}
	if err := json.Unmarshal(recordsJSON, &run.Records); err != nil {
		return nil, fmt.Errorf("get run id=%d: unmarshal records: %w", id, err)
	}

	return &run, nil
}
