package services

import (
	"math"

	"queue-sim-service/internal/domain"
)

// One step of a cumulative distribution used for inverse-transform
// sampling: a draw u selects the first entry whose upper bound is
// >= u.
type cumEntry struct {
	upper  float64
	typ    domain.DayType
	demand int
}

// buildDayTypeCDF accumulates the day-type probabilities in the order
// the problem lists them.
func buildDayTypeCDF(dayTypes []domain.DayTypeProb) []cumEntry {
	cdf := make([]cumEntry, 0, len(dayTypes))
	cumulative := 0.0
	for _, dt := range dayTypes {
		cumulative += dt.Prob
		cdf = append(cdf, cumEntry{upper: cumulative, typ: dt.Type})
	}

	return cdf
}

// buildDemandCDF accumulates one day type's demand probabilities in
// listed order. Zero-probability levels stay in the table; they can
// never be selected because their upper bound equals the previous
// entry's.
func buildDemandCDF(dist []domain.DemandProb) []cumEntry {
	cdf := make([]cumEntry, 0, len(dist))
	cumulative := 0.0
	for _, d := range dist {
		cumulative += d.Prob
		cdf = append(cdf, cumEntry{upper: cumulative, demand: d.Demand})
	}

	return cdf
}

// sampleCDF returns the first entry covering u. Bounds are inclusive;
// when rounding leaves the final bound fractionally below u, the last
// entry wins.
func sampleCDF(cdf []cumEntry, u float64) cumEntry {
	for _, e := range cdf {
		if u <= e.upper {
			return e
		}
	}

	return cdf[len(cdf)-1]
}

// SimulateNewsvendor runs the Monte Carlo newsvendor simulation: for
// each day, draw the day type, draw the demand conditional on that
// type, and account the day's profit under the problem's unit
// economics. Both draws come from one seeded source, type first, so
// a seeded run is reproducible.
func SimulateNewsvendor(p domain.NewsvendorProblem, seed *int64) ([]domain.DayRecord, domain.NewsvendorSummary, error) {
	if err := p.Validate(); err != nil {
		return nil, domain.NewsvendorSummary{}, err
	}

	typeCDF := buildDayTypeCDF(p.DayTypes)
	demandCDFs := make(map[domain.DayType][]cumEntry, len(p.DayTypes))
	for _, dt := range p.DayTypes {
		demandCDFs[dt.Type] = buildDemandCDF(p.Demand[dt.Type])
	}

	rng := newRand(seed)
	unitLostProfit := p.SellingPrice - p.CostPrice

	records := make([]domain.DayRecord, 0, p.Days)
	cumulativeProfit := 0.0

	for day := 1; day <= p.Days; day++ {
		uType := rng.Float64()
		dayType := sampleCDF(typeCDF, uType).typ

		uDemand := rng.Float64()
		demand := sampleCDF(demandCDFs[dayType], uDemand).demand

		sold := demand
		if p.OrderQuantity < sold {
			sold = p.OrderQuantity
		}
		unsold := p.OrderQuantity - demand
		if unsold < 0 {
			unsold = 0
		}
		unmet := demand - p.OrderQuantity
		if unmet < 0 {
			unmet = 0
		}

		revenue := float64(sold) * p.SellingPrice
		cost := float64(p.OrderQuantity) * p.CostPrice
		salvage := float64(unsold) * p.SalvagePrice
		lostProfit := float64(unmet) * unitLostProfit

		dailyProfit := revenue + salvage - cost
		if p.IncludeLostProfit {
			dailyProfit -= lostProfit
		}
		cumulativeProfit += dailyProfit

		records = append(records, domain.DayRecord{
			Day:              day,
			RNType:           uType,
			Type:             dayType,
			RNDemand:         uDemand,
			Demand:           demand,
			Ordered:          p.OrderQuantity,
			Sold:             sold,
			Unsold:           unsold,
			Unmet:            unmet,
			Revenue:          revenue,
			Cost:             cost,
			Salvage:          salvage,
			LostProfit:       lostProfit,
			DailyProfit:      dailyProfit,
			CumulativeProfit: cumulativeProfit,
		})
	}

	return records, summarizeDays(records), nil
}

// summarizeDays reduces the day records in one pass plus a variance
// pass. Standard deviation uses the sample (n-1) form and is zero for
// a single-day run.
func summarizeDays(records []domain.DayRecord) domain.NewsvendorSummary {
	if len(records) == 0 {
		return domain.NewsvendorSummary{}
	}

	n := float64(len(records))

	totalProfit := 0.0
	totalDemand := 0.0
	stockouts := 0
	scraps := 0
	for _, rec := range records {
		totalProfit += rec.DailyProfit
		totalDemand += float64(rec.Demand)
		if rec.Unmet > 0 {
			stockouts++
		}
		if rec.Unsold > 0 {
			scraps++
		}
	}
	avgProfit := totalProfit / n

	stdDev := 0.0
	if len(records) > 1 {
		sumSquares := 0.0
		for _, rec := range records {
			diff := rec.DailyProfit - avgProfit
			sumSquares += diff * diff
		}
		stdDev = math.Sqrt(sumSquares / (n - 1))
	}

	return domain.NewsvendorSummary{
		AvgDailyProfit:    avgProfit,
		StdDevDailyProfit: stdDev,
		TotalProfit:       totalProfit,
		AvgDemand:         totalDemand / n,
		StockoutRate:      float64(stockouts) / n,
		ScrapRate:         float64(scraps) / n,
	}
}
