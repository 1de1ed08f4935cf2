package utils

import (
	"fmt"
	"math"
	"sort"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// Weighted pairs a candidate with its relative weight
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// WeightedTable is a validated candidate list with precomputed cumulative
// weights. Tables are immutable and safe for concurrent draws.
type WeightedTable[T any] struct {
	items  []T
	cumul  []float64
	total  float64
	lastOK int // index of the last candidate with positive weight
}

// NewWeightedTable validates candidates and builds a table.
// An empty list, a negative or NaN weight, or an all-zero list is an
// invalid configuration.
func NewWeightedTable[T any](candidates []Weighted[T]) (*WeightedTable[T], error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no weighted candidates", domain.ErrInvalidConfiguration)
	}

	t := &WeightedTable[T]{
		items:  make([]T, len(candidates)),
		cumul:  make([]float64, len(candidates)),
		lastOK: -1,
	}
	for i, c := range candidates {
		if c.Weight < 0 || math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
			return nil, fmt.Errorf("%w: candidate %d has weight %v", domain.ErrInvalidConfiguration, i, c.Weight)
		}
		t.total += c.Weight
		t.items[i] = c.Item
		t.cumul[i] = t.total
		if c.Weight > 0 {
			t.lastOK = i
		}
	}
	if t.total <= 0 {
		return nil, fmt.Errorf("%w: all candidate weights are zero", domain.ErrInvalidConfiguration)
	}
	return t, nil
}

// Len returns the number of candidates, including zero-weight ones
func (t *WeightedTable[T]) Len() int {
	return len(t.items)
}

// Total returns the sum of all weights
func (t *WeightedTable[T]) Total() float64 {
	return t.total
}

// Pick returns the candidate selected by a roll of rnd in [0, 1).
// The roll is scaled to [0, total) and the first candidate whose cumulative
// weight exceeds it wins, so zero-weight candidates are never returned.
func (t *WeightedTable[T]) Pick(rnd func() float64) T {
	roll := rnd() * t.total
	i := sort.Search(len(t.cumul), func(i int) bool { return t.cumul[i] > roll })
	if i >= len(t.items) {
		// rnd returned 1.0 or float rounding pushed the roll to the total
		i = t.lastOK
	}
	return t.items[i]
}

// SelectWeighted draws one candidate. See NewWeightedTable for the error cases.
func SelectWeighted[T any](candidates []Weighted[T], rnd func() float64) (T, error) {
	t, err := NewWeightedTable(candidates)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Pick(rnd), nil
}
