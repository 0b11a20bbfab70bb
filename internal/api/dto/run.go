package dto

import "time"

type RunSummaryResponse struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Customers int             `json:"customers"`
	Mode      string          `json:"mode"`
	Summary   SummaryResponse `json:"summary"`
}

type ListRunsResponse struct {
	Runs []RunSummaryResponse `json:"runs"`
}

type RunResponse struct {
	ID        int64                    `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Customers int                      `json:"customers"`
	Seed      *int64                   `json:"seed,omitempty"`
	Mode      string                   `json:"mode"`
	Records   []CustomerRecordResponse `json:"records"`
	Summary   SummaryResponse          `json:"summary"`
}

// WatchEvent is the payload pushed to /watch subscribers when a
// simulation finishes.
type WatchEvent struct {
	Event     string          `json:"event"`
	RunID     int64           `json:"run_id,omitempty"`
	Customers int             `json:"customers"`
	Mode      string          `json:"mode"`
	Summary   SummaryResponse `json:"summary"`
	CreatedAt time.Time       `json:"created_at"`
}
