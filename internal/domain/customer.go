package domain

// Represents one customer's raw random draws, one per stream.
// IAT is drawn from 1..1000 (per-mille resolution), ST from 1..100
// (percentile resolution). Pairs are immutable once produced.
type RandomNumberPair struct {
	IAT int
	ST  int
}

// Represents a single row of the simulation table: one customer's
// complete timing breakdown. All times share one unit (minutes).
// Records are produced in arrival order and never mutated after
// the simulation pass that created them.
type CustomerRecord struct {
	Index        int
	RNIAT        int
	RNST         int
	IAT          int
	ST           int
	ArrivalTime  int
	ServiceStart int
	ServiceEnd   int
	WaitTime     int
	TimeInSystem int
	IdleBefore   int
}
