package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"queue-sim-service/internal/domain"
)

// SampleNewsvendorYAML is a ready-to-edit problem file matching the
// built-in defaults. Listed order fixes the cumulative ordering used
// when sampling, so keep related entries together.
const SampleNewsvendorYAML = `# Newsvendor problem definition.
days: 1000
order_quantity: 70
selling_price: 0.50
cost_price: 0.33
salvage_price: 0.05
include_lost_profit: true
day_types:
  - { type: good, prob: 0.35 }
  - { type: fair, prob: 0.45 }
  - { type: poor, prob: 0.20 }
demand:
  good:
    - { demand: 40, prob: 0.03 }
    - { demand: 50, prob: 0.05 }
    - { demand: 60, prob: 0.15 }
    - { demand: 70, prob: 0.20 }
    - { demand: 80, prob: 0.35 }
    - { demand: 90, prob: 0.15 }
    - { demand: 100, prob: 0.07 }
  fair:
    - { demand: 40, prob: 0.10 }
    - { demand: 50, prob: 0.18 }
    - { demand: 60, prob: 0.40 }
    - { demand: 70, prob: 0.20 }
    - { demand: 80, prob: 0.08 }
    - { demand: 90, prob: 0.04 }
    - { demand: 100, prob: 0.00 }
  poor:
    - { demand: 40, prob: 0.44 }
    - { demand: 50, prob: 0.22 }
    - { demand: 60, prob: 0.16 }
    - { demand: 70, prob: 0.12 }
    - { demand: 80, prob: 0.06 }
    - { demand: 90, prob: 0.00 }
    - { demand: 100, prob: 0.00 }
`

type dayTypeEntry struct {
	Type string  `yaml:"type"`
	Prob float64 `yaml:"prob"`
}

type demandEntry struct {
	Demand int     `yaml:"demand"`
	Prob   float64 `yaml:"prob"`
}

type newsvendorFile struct {
	Days              int                      `yaml:"days"`
	OrderQuantity     int                      `yaml:"order_quantity"`
	SellingPrice      float64                  `yaml:"selling_price"`
	CostPrice         float64                  `yaml:"cost_price"`
	SalvagePrice      float64                  `yaml:"salvage_price"`
	IncludeLostProfit bool                     `yaml:"include_lost_profit"`
	DayTypes          []dayTypeEntry           `yaml:"day_types"`
	Demand            map[string][]demandEntry `yaml:"demand"`
}

// LoadNewsvendorProblem reads a newsvendor problem from a YAML file
// and validates it.
func LoadNewsvendorProblem(path string) (domain.NewsvendorProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.NewsvendorProblem{}, fmt.Errorf("load newsvendor problem: %w", err)
	}

	var file newsvendorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.NewsvendorProblem{}, fmt.Errorf("load newsvendor problem: parse %s: %w", path, err)
	}

	p := domain.NewsvendorProblem{
		Days:              file.Days,
		OrderQuantity:     file.OrderQuantity,
		SellingPrice:      file.SellingPrice,
		CostPrice:         file.CostPrice,
		SalvagePrice:      file.SalvagePrice,
		IncludeLostProfit: file.IncludeLostProfit,
		DayTypes:          make([]domain.DayTypeProb, 0, len(file.DayTypes)),
		Demand:            make(map[domain.DayType][]domain.DemandProb, len(file.Demand)),
	}
	for _, dt := range file.DayTypes {
		p.DayTypes = append(p.DayTypes, domain.DayTypeProb{Type: domain.DayType(dt.Type), Prob: dt.Prob})
	}
	for typ, dist := range file.Demand {
		levels := make([]domain.DemandProb, 0, len(dist))
		for _, d := range dist {
			levels = append(levels, domain.DemandProb{Demand: d.Demand, Prob: d.Prob})
		}
		p.Demand[domain.DayType(typ)] = levels
	}

	if err := p.Validate(); err != nil {
		return domain.NewsvendorProblem{}, err
	}

	return p, nil
}
