package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createQueueRunsQuery := `
	CREATE TABLE IF NOT EXISTS queue_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		customers INTEGER NOT NULL,
		seed INTEGER,
		mode TEXT NOT NULL,
		records TEXT NOT NULL,
		avg_wait REAL NOT NULL,
		max_wait INTEGER NOT NULL,
		total_idle INTEGER NOT NULL,
		utilization REAL NOT NULL,
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
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
