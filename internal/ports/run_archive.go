package ports

import (
	"context"
	"errors"

	"queue-sim-service/internal/domain"
)

// Returned by GetRun when no archived run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Port: a boundary for persisting finished queue runs and reading
// them back.
type RunArchive interface {
	// Persist a finished run and return its assigned id.
	SaveQueueRun(ctx context.Context, run *domain.QueueRun) (int64, error)
	// List the most recent runs, newest first, without their records.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
	// Retrieve one archived run with its full record sequence.
	GetRun(ctx context.Context, id int64) (*domain.QueueRun, error)
}
