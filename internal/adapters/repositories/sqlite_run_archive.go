package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/ports"
)

// SQLite-backed implementation of the RunArchive port. Timestamps are
// stored as RFC 3339 text at second precision, so created_at order is
// also lexicographic order.
type SqliteRunArchive struct{ DB *sql.DB }

func NewSqliteRunArchive(db *sql.DB) *SqliteRunArchive {
	return &SqliteRunArchive{DB: db}
}

// Persist a finished run. A zero CreatedAt is stamped with the current
// UTC time.
func (s *SqliteRunArchive) SaveQueueRun(ctx context.Context, run *domain.QueueRun) (int64, error) {
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

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var seed sql.NullInt64
	if run.Seed != nil {
		seed = sql.NullInt64{Int64: *run.Seed, Valid: true}
	}

	query := `
	INSERT INTO queue_runs (
		created_at,
		customers,
		seed,
		mode,
		records,
		avg_wait,
		max_wait,
		total_idle,
		utilization,
		horizon_end
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		createdAt.UTC().Format(time.RFC3339),
		run.Customers,
		seed,
		run.Mode,
		string(recordsJSON),
		run.Summary.AvgWait,
		run.Summary.MaxWait,
		run.Summary.TotalIdle,
		run.Summary.Utilization,
		run.Summary.HorizonEnd,
	)
	if err != nil {
		return 0, fmt.Errorf("save queue run: insert queue_runs row: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save queue run: last insert id: %w", err)
	}

	return id, nil
}

// List the most recent runs, newest first, without their records.
func (s *SqliteRunArchive) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if s.DB == nil {
		return nil, errors.New("run archive: DB is nil")
	}
	if limit < 1 {
		return nil, fmt.Errorf("list runs: limit must be positive, got %d", limit)
	}

	query := `
	SELECT
		id,
		created_at,
		customers,
		mode,
		avg_wait,
		max_wait,
		total_idle,
		utilization,
		horizon_end
	FROM queue_runs
	ORDER BY created_at DESC, id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query queue_runs table: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.RunSummary, 0, limit)
	for rows.Next() {
		var (
			rs        domain.RunSummary
			createdAt string
		)
		err := rows.Scan(
			&rs.ID,
			&createdAt,
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

		rs.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list runs: parse created_at %q: %w", createdAt, err)
		}
		summaries = append(summaries, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return summaries, nil
}

// Retrieve one archived run with its full record sequence.
func (s *SqliteRunArchive) GetRun(ctx context.Context, id int64) (*domain.QueueRun, error) {
	if s.DB == nil {
		return nil, errors.New("run archive: DB is nil")
	}

	query := `
	SELECT
		id,
		created_at,
		customers,
		seed,
		mode,
		records,
		avg_wait,
		max_wait,
		total_idle,
		utilization,
		horizon_end
	FROM queue_runs
	WHERE id = ?;
	`

	var (
		run         domain.QueueRun
		createdAt   string
		seed        sql.NullInt64
		recordsJSON string
	)
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&createdAt,
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

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("get run id=%d: parse created_at %q: %w", id, createdAt, err)
	}
	if seed.Valid {
		v := seed.Int64
		run.Seed = &v
	}
	if err := json.Unmarshal([]byte(recordsJSON), &run.Records); err != nil {
		return nil, fmt.Errorf("get run id=%d: unmarshal records: %w", id, err)
	}

	return &run, nil
}
