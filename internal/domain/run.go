package domain

import "time"

// How a run's random numbers were produced.
const (
	RunModeGenerated = "generated"
	RunModeCustom    = "custom"
)

// Represents an archived queue simulation: the input echo, the full
// record sequence, and the summary. Runs are immutable once stored;
// the engine itself never reads them back.
type QueueRun struct {
	ID        int64
	CreatedAt time.Time
	Customers int
	Seed      *int64
	Mode      string
	Records   []CustomerRecord
	Summary   SummaryKPIs
}

// Listing row for the run history view: identity plus the summary,
// without the per-customer records.
type RunSummary struct {
	ID        int64
	CreatedAt time.Time
	Customers int
	Mode      string
	Summary   SummaryKPIs
}
