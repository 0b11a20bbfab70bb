package domain

// Aggregate statistics over a full customer sequence.
// Computed once per run, never incrementally updated.
type SummaryKPIs struct {
	AvgWait     float64
	MaxWait     int
	TotalIdle   int
	Utilization float64
	HorizonEnd  int
}
