package services

import "queue-sim-service/internal/domain"

// timelineInput couples one customer's raw draws with their mapped
// time values, in arrival order.
type timelineInput struct {
	rnIAT int
	rnST  int
	iat   int
	st    int
}

// buildTimeline runs the single forward pass over the mapped inputs
// and produces one record per customer.
//
// Only two scalars thread between iterations: the cumulative arrival
// time and the previous customer's service end. Each record depends
// on nothing further back, so the pass is linear and a run is fully
// re-entrant. Zero-valued times take no special path.
func buildTimeline(inputs []timelineInput) []domain.CustomerRecord {
	records := make([]domain.CustomerRecord, 0, len(inputs))

	cumulativeArrival := 0
	prevServiceEnd := 0

	for i, in := range inputs {
		cumulativeArrival += in.iat

		start := cumulativeArrival
		if prevServiceEnd > start {
			start = prevServiceEnd
		}

		// Idle gap before this customer: positive only when the server
		// finished the previous customer before this one arrived. For
		// customer 1 this is the whole span from time zero to the first
		// arrival.
		idle := cumulativeArrival - prevServiceEnd
		if idle < 0 {
			idle = 0
		}

		end := start + in.st
		wait := start - cumulativeArrival

		records = append(records, domain.CustomerRecord{
			Index:        i + 1,
			RNIAT:        in.rnIAT,
			RNST:         in.rnST,
			IAT:          in.iat,
			ST:           in.st,
			ArrivalTime:  cumulativeArrival,
			ServiceStart: start,
			ServiceEnd:   end,
			WaitTime:     wait,
			TimeInSystem: wait + in.st,
			IdleBefore:   idle,
		})

		prevServiceEnd = end
	}

	return records
}
