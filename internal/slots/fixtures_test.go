package slots

import (
	"testing"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/stretchr/testify/require"
)

// Every test reel carries S J G X Y with equal weight, so a roll of
// 0.1 0.3 0.5 0.7 0.9 picks them in that order.
const (
	rollS = 0.1
	rollJ = 0.3
	rollG = 0.5
	rollX = 0.7
	rollY = 0.9
)

func testReel() domain.Reel {
	return domain.Reel{Symbols: []domain.SlotSymbol{
		{Symbol: "S", Weight: 1},
		{Symbol: "J", Weight: 1},
		{Symbol: "G", Weight: 1},
		{Symbol: "X", Weight: 1},
		{Symbol: "Y", Weight: 1},
	}}
}

func testConfig(extra ...domain.Combination) domain.SlotMachineConfig {
	combos := []domain.Combination{
		{Symbols: []string{"S"}, Reward: domain.RewardSpec{Kind: domain.RewardSpin, Amount: 2}},
		{Symbols: []string{"J", "J", "J", "J"}, Reward: domain.RewardSpec{Kind: domain.RewardJackpot, Amount: 1}},
		{Symbols: []string{"G"}, Reward: domain.RewardSpec{Kind: domain.RewardGold, Amount: 10}},
		{Symbols: []string{"G", "G"}, Reward: domain.RewardSpec{Kind: domain.RewardGold, Amount: 40}},
	}
	return domain.SlotMachineConfig{
		Name:         "test",
		Reels:        []domain.Reel{testReel(), testReel(), testReel(), testReel()},
		Combinations: append(combos, extra...),
	}
}

func testMachine(t *testing.T, extra ...domain.Combination) *Machine {
	t.Helper()
	m, err := Compile(testConfig(extra...))
	require.NoError(t, err)
	return m
}

// rolls replays values in order, then repeats the last one
func rolls(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func constant(v float64) func() float64 {
	return func() float64 { return v }
}

func kinds(rewards []domain.RewardSpec) []domain.RewardKind {
	out := make([]domain.RewardKind, len(rewards))
	for i, r := range rewards {
		out[i] = r.Kind
	}
	return out
}
