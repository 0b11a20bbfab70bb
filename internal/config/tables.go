package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"queue-sim-service/internal/domain"
)

// SampleTablesYAML is a ready-to-edit table file matching the built-in
// defaults. Bucket order is significant: bounds must strictly increase
// and the last bound must equal max.
const SampleTablesYAML = `# Distribution tables for the queue simulator.
# A random number r selects the first bucket with upper_bound >= r.
iat:
  max: 1000
  buckets:
    - { upper_bound: 125, value: 1 }
    - { upper_bound: 250, value: 2 }
    - { upper_bound: 375, value: 3 }
    - { upper_bound: 500, value: 4 }
    - { upper_bound: 625, value: 5 }
    - { upper_bound: 750, value: 6 }
    - { upper_bound: 875, value: 7 }
    - { upper_bound: 1000, value: 8 }
st:
  max: 100
  buckets:
    - { upper_bound: 29, value: 1 }
    - { upper_bound: 49, value: 2 }
    - { upper_bound: 59, value: 3 }
    - { upper_bound: 64, value: 4 }
    - { upper_bound: 74, value: 5 }
    - { upper_bound: 100, value: 6 }
`

type bucketEntry struct {
	UpperBound int `yaml:"upper_bound"`
	Value      int `yaml:"value"`
}

type tableEntry struct {
	Max     int           `yaml:"max"`
	Buckets []bucketEntry `yaml:"buckets"`
}

type tablesFile struct {
	IAT tableEntry `yaml:"iat"`
	ST  tableEntry `yaml:"st"`
}

func (e tableEntry) toDomain(name string) domain.DistributionTable {
	buckets := make([]domain.Bucket, 0, len(e.Buckets))
	for _, b := range e.Buckets {
		buckets = append(buckets, domain.Bucket{UpperBound: b.UpperBound, Value: b.Value})
	}
	return domain.DistributionTable{Name: name, Max: e.Max, Buckets: buckets}
}

// LoadTables reads a distribution-table pair from a YAML file and
// validates it. The returned pair is ready for simulation use.
func LoadTables(path string) (domain.TablePair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TablePair{}, fmt.Errorf("load tables: %w", err)
	}

	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.TablePair{}, fmt.Errorf("load tables: parse %s: %w", path, err)
	}

	pair := domain.TablePair{
		IAT: file.IAT.toDomain("iat"),
		ST:  file.ST.toDomain("st"),
	}
	if err := pair.Validate(); err != nil {
		return domain.TablePair{}, err
	}

	return pair, nil
}
