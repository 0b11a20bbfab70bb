package services

import "queue-sim-service/internal/domain"

// SummarizeQueue reduces a completed record sequence into the five
// summary statistics in one read-only pass. Utilization is the busy
// fraction of the horizon, reported as 0 for an empty or zero-length
// horizon.
func SummarizeQueue(records []domain.CustomerRecord) domain.SummaryKPIs {
	if len(records) == 0 {
		return domain.SummaryKPIs{}
	}

	totalWait := 0
	maxWait := 0
	totalIdle := 0
	for _, rec := range records {
		totalWait += rec.WaitTime
		if rec.WaitTime > maxWait {
			maxWait = rec.WaitTime
		}
		totalIdle += rec.IdleBefore
	}

	horizonEnd := records[len(records)-1].ServiceEnd

	utilization := 0.0
	if horizonEnd > 0 {
		utilization = float64(horizonEnd-totalIdle) / float64(horizonEnd)
	}

	return domain.SummaryKPIs{
		AvgWait:     float64(totalWait) / float64(len(records)),
		MaxWait:     maxWait,
		TotalIdle:   totalIdle,
		Utilization: utilization,
		HorizonEnd:  horizonEnd,
	}
}
