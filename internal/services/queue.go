package services

import (
	"fmt"

	"queue-sim-service/internal/domain"
)

// QueueInput describes one simulation request. Seed is only consulted
// in generated mode; CustomIAT and CustomST only in custom mode.
type QueueInput struct {
	Customers   int
	Seed        *int64
	UseCustomRN bool
	CustomIAT   []int
	CustomST    []int
}

// Mode names how the run's random numbers were produced.
func (in QueueInput) Mode() string {
	if in.UseCustomRN {
		return domain.RunModeCustom
	}

	return domain.RunModeGenerated
}

// SimulateQueue runs one complete single-server simulation: validate
// the input and tables, produce the random-number pairs, map them to
// time values, build the timeline, and summarize it.
//
// The whole run is a pure function of its arguments. It either
// returns the full record sequence with its summary, or an error
// before any partial result exists.
func SimulateQueue(in QueueInput, tables domain.TablePair) ([]domain.CustomerRecord, domain.SummaryKPIs, error) {
	if in.Customers < 1 {
		return nil, domain.SummaryKPIs{}, &domain.ValidationError{
			Stream: "customer_count",
			Reason: fmt.Sprintf("must be >= 1, got %d", in.Customers),
		}
	}

	if err := tables.Validate(); err != nil {
		return nil, domain.SummaryKPIs{}, err
	}

	var (
		pairs []domain.RandomNumberPair
		err   error
	)
	if in.UseCustomRN {
		pairs, err = PairCustomRandomNumbers(in.Customers, in.CustomIAT, in.CustomST, tables.IAT.Max, tables.ST.Max)
		if err != nil {
			return nil, domain.SummaryKPIs{}, err
		}
	} else {
		pairs = GenerateRandomNumbers(in.Customers, in.Seed, tables.IAT.Max, tables.ST.Max)
	}

	inputs := make([]timelineInput, 0, len(pairs))
	for _, p := range pairs {
		iat, err := tables.IAT.ValueFor(p.IAT)
		if err != nil {
			return nil, domain.SummaryKPIs{}, err
		}
		st, err := tables.ST.ValueFor(p.ST)
		if err != nil {
			return nil, domain.SummaryKPIs{}, err
		}

		inputs = append(inputs, timelineInput{rnIAT: p.IAT, rnST: p.ST, iat: iat, st: st})
	}

	records := buildTimeline(inputs)

	return records, SummarizeQueue(records), nil
}
