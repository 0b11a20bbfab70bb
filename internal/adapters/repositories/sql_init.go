package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createQueueRunsQuery := `
	CREATE TABLE IF NOT EXISTS queue_runs (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		customers INTEGER NOT NULL,
		seed BIGINT,
		mode TEXT NOT NULL,
		records JSONB NOT NULL,
		avg_wait DOUBLE PRECISION NOT NULL,
		max_wait INTEGER NOT NULL,
		total_idle INTEGER NOT NULL,
		utilization DOUBLE PRECISION NOT NULL,
		horizon_end INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_queue_runs_created_at
	ON queue_runs(created_at DESC);
	`

	statements := []string{
		createQueueRunsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
