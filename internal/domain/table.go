package domain

import "fmt"

// One row of a cumulative-probability table. A bucket covers every
// random number up to and including UpperBound that no earlier
// bucket claimed.
type Bucket struct {
	UpperBound int
	Value      int
}

// Represents a discrete distribution as an ordered bucket list over
// the random-number range [1, Max]. Tables are immutable planning
// data; swapping a table never touches the simulation recurrence.
type DistributionTable struct {
	Name    string
	Max     int
	Buckets []Bucket
}

// The two tables a queue simulation needs, one per stream.
type TablePair struct {
	IAT DistributionTable
	ST  DistributionTable
}

// Validate checks that the buckets partition [1, Max] exhaustively:
// at least one bucket, strictly increasing bounds, the last bound
// equal to Max, and no negative mapped values.
func (t DistributionTable) Validate() error {
	if t.Max < 1 {
		return &ConfigurationError{Table: t.Name, Reason: fmt.Sprintf("max must be >= 1, got %d", t.Max)}
	}
	if len(t.Buckets) == 0 {
		return &ConfigurationError{Table: t.Name, Reason: "table has no buckets"}
	}

	prev := 0
	for i, b := range t.Buckets {
		if b.UpperBound <= prev {
			return &ConfigurationError{
				Table:  t.Name,
				Reason: fmt.Sprintf("bucket %d upper bound %d must exceed previous bound %d", i+1, b.UpperBound, prev),
			}
		}
		if b.Value < 0 {
			return &ConfigurationError{
				Table:  t.Name,
				Reason: fmt.Sprintf("bucket %d maps to negative value %d", i+1, b.Value),
			}
		}
		prev = b.UpperBound
	}

	if prev != t.Max {
		return &ConfigurationError{
			Table:  t.Name,
			Reason: fmt.Sprintf("buckets cover [1, %d] but table range is [1, %d]", prev, t.Max),
		}
	}

	return nil
}

// ValueFor maps a random number to its time value: the first bucket
// whose upper bound is >= rn wins, bounds inclusive. The caller is
// expected to have validated both the table and the random number;
// an uncovered rn reports a configuration defect rather than a
// silent default.
func (t DistributionTable) ValueFor(rn int) (int, error) {
	for _, b := range t.Buckets {
		if rn <= b.UpperBound {
			return b.Value, nil
		}
	}

	return 0, &ConfigurationError{
		Table:  t.Name,
		Reason: fmt.Sprintf("random number %d is not covered by any bucket", rn),
	}
}

// Validate both tables of a pair.
func (p TablePair) Validate() error {
	if err := p.IAT.Validate(); err != nil {
		return err
	}

	return p.ST.Validate()
}

// DefaultTables returns the classic teaching tables: inter-arrival
// times 1..8 minutes over RN 1..1000 and service times 1..6 minutes
// over RN 1..100.
func DefaultTables() TablePair {
	return TablePair{
		IAT: DistributionTable{
			Name: "iat",
			Max:  1000,
			Buckets: []Bucket{
				{UpperBound: 125, Value: 1},
				{UpperBound: 250, Value: 2},
				{UpperBound: 375, Value: 3},
				{UpperBound: 500, Value: 4},
				{UpperBound: 625, Value: 5},
				{UpperBound: 750, Value: 6},
				{UpperBound: 875, Value: 7},
				{UpperBound: 1000, Value: 8},
			},
		},
		ST: DistributionTable{
			Name: "st",
			Max:  100,
			Buckets: []Bucket{
				{UpperBound: 29, Value: 1},
				{UpperBound: 49, Value: 2},
				{UpperBound: 59, Value: 3},
				{UpperBound: 64, Value: 4},
				{UpperBound: 74, Value: 5},
				{UpperBound: 100, Value: 6},
			},
		},
	}
}
