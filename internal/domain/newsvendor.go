package domain

import (
	"fmt"
	"math"
)

// Probabilities must sum to one within this tolerance.
const ProbabilityTolerance = 1e-6

// Category of sales day ("good", "fair", "poor" in the default
// problem; user-definable).
type DayType string

// One entry of the day-type distribution.
type DayTypeProb struct {
	Type DayType
	Prob float64
}

// One entry of a per-day-type demand distribution.
type DemandProb struct {
	Demand int
	Prob   float64
}

// Represents a complete newsvendor problem definition: horizon,
// order policy, unit economics, and the two-stage demand model
// (day type first, then demand conditional on the type). Entry
// order inside DayTypes and each demand list fixes the cumulative
// ordering used for sampling.
type NewsvendorProblem struct {
	Days              int
	OrderQuantity     int
	SellingPrice      float64
	CostPrice         float64
	SalvagePrice      float64
	IncludeLostProfit bool
	DayTypes          []DayTypeProb
	Demand            map[DayType][]DemandProb
}

// Validate checks the problem before any sampling: positive horizon
// and order quantity, non-negative prices, and probability sets that
// each sum to one.
func (p NewsvendorProblem) Validate() error {
	if p.Days < 1 {
		return &ConfigurationError{Table: "newsvendor", Reason: fmt.Sprintf("days must be >= 1, got %d", p.Days)}
	}
	if p.OrderQuantity < 1 {
		return &ConfigurationError{Table: "newsvendor", Reason: fmt.Sprintf("order quantity must be >= 1, got %d", p.OrderQuantity)}
	}
	if p.SellingPrice < 0 || p.CostPrice < 0 || p.SalvagePrice < 0 {
		return &ConfigurationError{Table: "newsvendor", Reason: "prices must be non-negative"}
	}
	if len(p.DayTypes) == 0 {
		return &ConfigurationError{Table: "day_types", Reason: "no day types defined"}
	}

	total := 0.0
	for _, dt := range p.DayTypes {
		if dt.Prob < 0 {
			return &ConfigurationError{Table: "day_types", Reason: fmt.Sprintf("day type %q has negative probability", dt.Type)}
		}
		total += dt.Prob
	}
	if math.Abs(total-1.0) > ProbabilityTolerance {
		return &ConfigurationError{Table: "day_types", Reason: fmt.Sprintf("probabilities must sum to 1, got %.4f", total)}
	}

	for _, dt := range p.DayTypes {
		dist, ok := p.Demand[dt.Type]
		if !ok || len(dist) == 0 {
			return &ConfigurationError{Table: string(dt.Type), Reason: "day type has no demand distribution"}
		}

		sum := 0.0
		for _, d := range dist {
			if d.Demand <= 0 {
				return &ConfigurationError{Table: string(dt.Type), Reason: fmt.Sprintf("demand level must be positive, got %d", d.Demand)}
			}
			if d.Prob < 0 {
				return &ConfigurationError{Table: string(dt.Type), Reason: fmt.Sprintf("demand level %d has negative probability", d.Demand)}
			}
			sum += d.Prob
		}
		if math.Abs(sum-1.0) > ProbabilityTolerance {
			return &ConfigurationError{Table: string(dt.Type), Reason: fmt.Sprintf("probabilities must sum to 1, got %.4f", sum)}
		}
	}

	return nil
}

// One simulated day. RNType and RNDemand are the uniform draws that
// selected the day type and the demand level. Money fields carry the
// full profit decomposition; CumulativeProfit accumulates in day
// order.
type DayRecord struct {
	Day              int
	RNType           float64
	Type             DayType
	RNDemand         float64
	Demand           int
	Ordered          int
	Sold             int
	Unsold           int
	Unmet            int
	Revenue          float64
	Cost             float64
	Salvage          float64
	LostProfit       float64
	DailyProfit      float64
	CumulativeProfit float64
}

// Aggregate statistics over a full day sequence. StdDevDailyProfit
// is the sample standard deviation (n-1 denominator), zero for a
// single-day run. StockoutRate and ScrapRate are the fractions of
// days with unmet demand and with unsold papers.
type NewsvendorSummary struct {
	AvgDailyProfit    float64
	StdDevDailyProfit float64
	TotalProfit       float64
	AvgDemand         float64
	StockoutRate      float64
	ScrapRate         float64
}

// DefaultNewsvendorProblem returns the classic newsboy teaching
// problem: a 70-paper daily order at 50/33/5 cent unit economics
// with good/fair/poor day types.
func DefaultNewsvendorProblem() NewsvendorProblem {
	return NewsvendorProblem{
		Days:              1000,
		OrderQuantity:     70,
		SellingPrice:      0.50,
		CostPrice:         0.33,
		SalvagePrice:      0.05,
		IncludeLostProfit: true,
		DayTypes: []DayTypeProb{
			{Type: "good", Prob: 0.35},
			{Type: "fair", Prob: 0.45},
			{Type: "poor", Prob: 0.20},
		},
		Demand: map[DayType][]DemandProb{
			"good": {
				{Demand: 40, Prob: 0.03},
				{Demand: 50, Prob: 0.05},
				{Demand: 60, Prob: 0.15},
				{Demand: 70, Prob: 0.20},
				{Demand: 80, Prob: 0.35},
				{Demand: 90, Prob: 0.15},
				{Demand: 100, Prob: 0.07},
			},
			"fair": {
				{Demand: 40, Prob: 0.10},
				{Demand: 50, Prob: 0.18},
				{Demand: 60, Prob: 0.40},
				{Demand: 70, Prob: 0.20},
				{Demand: 80, Prob: 0.08},
				{Demand: 90, Prob: 0.04},
				{Demand: 100, Prob: 0.00},
			},
			"poor": {
				{Demand: 40, Prob: 0.44},
				{Demand: 50, Prob: 0.22},
				{Demand: 60, Prob: 0.16},
				{Demand: 70, Prob: 0.12},
				{Demand: 80, Prob: 0.06},
				{Demand: 90, Prob: 0.00},
				{Demand: 100, Prob: 0.00},
			},
		},
	}
}
