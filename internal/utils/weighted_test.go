package utils

import (
	"math/rand/v2"
	"testing"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(v float64) func() float64 {
	return func() float64 { return v }
}

func TestSelectWeighted_Errors(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Weighted[string]
	}{
		{"empty", nil},
		{"all zero", []Weighted[string]{{"a", 0}, {"b", 0}}},
		{"negative", []Weighted[string]{{"a", 5}, {"b", -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectWeighted(tt.candidates, RandomFloat)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		})
	}
}

func TestSelectWeighted_Boundaries(t *testing.T) {
	candidates := []Weighted[string]{{"X", 30}, {"O", 15}, {"F", 25}, {"I", 10}, {"J", 10}}

	tests := []struct {
		roll float64
		want string
	}{
		{0, "X"},
		{29.999 / 90, "X"},
		{30.5 / 90, "O"},
		{46.0 / 90, "F"},
		{79.999 / 90, "I"},
		{80.5 / 90, "J"},
		{0.99999, "J"},
		{1.0, "J"},
	}

	for _, tt := range tests {
		got, err := SelectWeighted(candidates, fixed(tt.roll))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "roll %v", tt.roll)
	}
}

func TestSelectWeighted_ZeroWeightNeverSelected(t *testing.T) {
	candidates := []Weighted[string]{{"zero-first", 0}, {"a", 1}, {"zero-mid", 0}, {"b", 1}, {"zero-last", 0}}
	table, err := NewWeightedTable(candidates)
	require.NoError(t, err)

	for _, roll := range []float64{0, 0.25, 0.4999999, 0.5, 0.75, 0.9999999, 1} {
		got := table.Pick(fixed(roll))
		assert.NotContains(t, []string{"zero-first", "zero-mid", "zero-last"}, got, "roll %v", roll)
	}
}

func TestSelectWeighted_Distribution(t *testing.T) {
	candidates := []Weighted[string]{{"a", 50}, {"b", 30}, {"c", 20}, {"never", 0}}
	table, err := NewWeightedTable(candidates)
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(1, 2))
	const draws = 200000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[table.Pick(r.Float64)]++
	}

	assert.InDelta(t, 0.5, float64(counts["a"])/draws, 0.01)
	assert.InDelta(t, 0.3, float64(counts["b"])/draws, 0.01)
	assert.InDelta(t, 0.2, float64(counts["c"])/draws, 0.01)
	assert.Zero(t, counts["never"])
}

func TestWeightedTable_Total(t *testing.T) {
	table, err := NewWeightedTable([]Weighted[int]{{1, 0.5}, {2, 1.5}})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, table.Total(), 1e-9)
	assert.Equal(t, 2, table.Len())
}
