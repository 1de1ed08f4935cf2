package slots

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/utils"
)

// Machine is a compiled slot machine: validated reels with precomputed
// weights and combinations in match order.
type Machine struct {
	config domain.SlotMachineConfig
	reels  []*utils.WeightedTable[string]
	combos []domain.Combination
}

// Compile validates cfg and prepares it for play
func Compile(cfg domain.SlotMachineConfig) (*Machine, error) {
	if len(cfg.Reels) != domain.ReelCount {
		return nil, fmt.Errorf("%w: slot machine %q has %d reels, want %d",
			domain.ErrInvalidConfiguration, cfg.Name, len(cfg.Reels), domain.ReelCount)
	}

	m := &Machine{config: cfg, reels: make([]*utils.WeightedTable[string], len(cfg.Reels))}
	for i, reel := range cfg.Reels {
		if len(reel.Symbols) != domain.SymbolsPerReel {
			return nil, fmt.Errorf("%w: reel %d has %d symbols, want %d",
				domain.ErrInvalidConfiguration, i, len(reel.Symbols), domain.SymbolsPerReel)
		}
		candidates := make([]utils.Weighted[string], len(reel.Symbols))
		for j, s := range reel.Symbols {
			if s.Symbol == "" {
				return nil, fmt.Errorf("%w: reel %d symbol %d is empty", domain.ErrInvalidConfiguration, i, j)
			}
			candidates[j] = utils.Weighted[string]{Item: s.Symbol, Weight: s.Weight}
		}
		table, err := utils.NewWeightedTable(candidates)
		if err != nil {
			return nil, fmt.Errorf("reel %d: %w", i, err)
		}
		m.reels[i] = table
	}

	for i, c := range cfg.Combinations {
		if err := validateCombination(c); err != nil {
			return nil, fmt.Errorf("%w: combination %d: %v", domain.ErrInvalidConfiguration, i, err)
		}
	}
	m.combos = sortCombinations(cfg.Combinations)
	return m, nil
}

func validateCombination(c domain.Combination) error {
	if len(c.Symbols) == 0 || len(c.Symbols) > domain.ReelCount {
		return fmt.Errorf("needs 1 to %d symbols, has %d", domain.ReelCount, len(c.Symbols))
	}
	r := c.Reward
	switch {
	case !r.Kind.Valid():
		return fmt.Errorf("unknown reward kind %q", r.Kind)
	case r.Amount < 0:
		return fmt.Errorf("negative amount %v", r.Amount)
	case r.Kind == domain.RewardSpin && (r.Amount < 1 || r.Amount != float64(int(r.Amount))):
		return fmt.Errorf("spin reward must grant a whole number of turns, got %v", r.Amount)
	case r.Kind == domain.RewardItem && (r.Item == nil || r.Item.Rarity == ""):
		return fmt.Errorf("item reward without rarity")
	}
	return nil
}

// Config returns the configuration the machine was compiled from
func (m *Machine) Config() domain.SlotMachineConfig {
	return m.config
}

// Draw spins every reel once
func (m *Machine) Draw(rnd func() float64) []string {
	drawn := make([]string, len(m.reels))
	for i, reel := range m.reels {
		drawn[i] = reel.Pick(rnd)
	}
	return drawn
}

// Resolve matches drawn symbols against the paytable
func (m *Machine) Resolve(drawn []string) []domain.RewardSpec {
	return resolveSorted(drawn, m.combos)
}

// ResolveCombinations returns the rewards of every combination found in
// drawn. Larger combinations are matched first and consume their symbols,
// so no drawn symbol pays twice. Equal-size combinations keep their
// configured order. No match yields an empty slice.
func ResolveCombinations(drawn []string, combos []domain.Combination) []domain.RewardSpec {
	return resolveSorted(drawn, sortCombinations(combos))
}

func sortCombinations(combos []domain.Combination) []domain.Combination {
	sorted := slices.Clone(combos)
	slices.SortStableFunc(sorted, func(a, b domain.Combination) int {
		return cmp.Compare(len(b.Symbols), len(a.Symbols))
	})
	return sorted
}

func resolveSorted(drawn []string, sorted []domain.Combination) []domain.RewardSpec {
	available := make(map[string]int, len(drawn))
	for _, s := range drawn {
		available[s]++
	}

	rewards := []domain.RewardSpec{}
	for _, c := range sorted {
		need := make(map[string]int, len(c.Symbols))
		for _, s := range c.Symbols {
			need[s]++
		}
		if !covers(available, need) {
			continue
		}
		for s, n := range need {
			available[s] -= n
		}
		rewards = append(rewards, c.Reward.Clone())
	}
	return rewards
}

func covers(available, need map[string]int) bool {
	for s, n := range need {
		if available[s] < n {
			return false
		}
	}
	return true
}
