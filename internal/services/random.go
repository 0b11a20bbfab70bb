package services

import (
	"fmt"
	"math/rand"
	"time"

	"queue-sim-service/internal/domain"
)

// newRand builds the run's single random source. A present seed makes
// the run reproducible; a nil seed yields a fresh time-seeded run.
func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}

	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GenerateRandomNumbers draws n pairs for the two streams, uniform
// over [1, iatMax] and [1, stMax]. The whole inter-arrival stream is
// drawn before the service stream, so two runs with the same seed
// and count produce identical pairs.
func GenerateRandomNumbers(n int, seed *int64, iatMax, stMax int) []domain.RandomNumberPair {
	rng := newRand(seed)

	iat := make([]int, n)
	for i := range iat {
		iat[i] = rng.Intn(iatMax) + 1
	}
	st := make([]int, n)
	for i := range st {
		st[i] = rng.Intn(stMax) + 1
	}

	pairs := make([]domain.RandomNumberPair, n)
	for i := range pairs {
		pairs[i] = domain.RandomNumberPair{IAT: iat[i], ST: st[i]}
	}

	return pairs
}

// ValidateCustomRandomNumbers checks user-supplied streams before any
// simulation work: each stream's length must equal n exactly and every
// value must lie inside its stream's range. Validation is all-or-nothing;
// the first violation aborts with a ValidationError carrying the stream,
// the 1-based index, and the violated bound.
func ValidateCustomRandomNumbers(n int, iat, st []int, iatMax, stMax int) error {
	if len(iat) != n {
		return &domain.ValidationError{
			Stream: "iat",
			Reason: fmt.Sprintf("expected %d random numbers, got %d", n, len(iat)),
		}
	}
	if len(st) != n {
		return &domain.ValidationError{
			Stream: "st",
			Reason: fmt.Sprintf("expected %d random numbers, got %d", n, len(st)),
		}
	}

	for i, v := range iat {
		if v < 1 || v > iatMax {
			return &domain.ValidationError{Stream: "iat", Index: i + 1, Value: v, Min: 1, Max: iatMax}
		}
	}
	for i, v := range st {
		if v < 1 || v > stMax {
			return &domain.ValidationError{Stream: "st", Index: i + 1, Value: v, Min: 1, Max: stMax}
		}
	}

	return nil
}

// PairCustomRandomNumbers validates the two custom streams and zips
// them into pairs.
func PairCustomRandomNumbers(n int, iat, st []int, iatMax, stMax int) ([]domain.RandomNumberPair, error) {
	if err := ValidateCustomRandomNumbers(n, iat, st, iatMax, stMax); err != nil {
		return nil, err
	}

	pairs := make([]domain.RandomNumberPair, n)
	for i := range pairs {
		pairs[i] = domain.RandomNumberPair{IAT: iat[i], ST: st[i]}
	}

	return pairs, nil
}
