package referral

import (
	"fmt"
	"math"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// Range pays Reward for every referral count in [Min, Max]
type Range struct {
	Min    int
	Max    int
	Reward domain.RewardSpec
}

// Contains reports whether n falls inside the range
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Calculator maps a referrer's referral count to rewards
type Calculator struct {
	milestones map[int]domain.RewardSpec
	ranges     []Range
}

// NewCalculator builds a calculator. Milestone counts must be positive and
// ranges must satisfy 1 <= Min <= Max. Milestone rewards are made one-off;
// range rewards are made sumable.
func NewCalculator(milestones map[int]domain.RewardSpec, ranges []Range) (*Calculator, error) {
	for n, spec := range milestones {
		if n < 1 {
			return nil, fmt.Errorf("%w: milestone count %d must be positive", domain.ErrInvalidConfiguration, n)
		}
		if err := validateReward(spec); err != nil {
			return nil, fmt.Errorf("%w: milestone %d: %v", domain.ErrInvalidConfiguration, n, err)
		}
	}
	for i, r := range ranges {
		if r.Min < 1 || r.Min > r.Max {
			return nil, fmt.Errorf("%w: range %d [%d, %d] is empty or not positive", domain.ErrInvalidConfiguration, i, r.Min, r.Max)
		}
		if err := validateReward(r.Reward); err != nil {
			return nil, fmt.Errorf("%w: range %d: %v", domain.ErrInvalidConfiguration, i, err)
		}
	}
	return newCalculator(milestones, ranges), nil
}

func validateReward(spec domain.RewardSpec) error {
	if !spec.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", spec.Kind)
	}
	if spec.Amount <= 0 || math.IsInf(spec.Amount, 0) || math.IsNaN(spec.Amount) {
		return fmt.Errorf("invalid amount %v", spec.Amount)
	}
	return nil
}

func newCalculator(milestones map[int]domain.RewardSpec, ranges []Range) *Calculator {
	c := &Calculator{
		milestones: make(map[int]domain.RewardSpec, len(milestones)),
		ranges:     make([]Range, len(ranges)),
	}
	for n, spec := range milestones {
		spec = spec.Clone()
		spec.Sumable = false
		spec.KeepAfterClaimed = true
		c.milestones[n] = spec
	}
	for i, r := range ranges {
		r.Reward = r.Reward.Clone()
		r.Reward.Sumable = true
		r.Reward.KeepAfterClaimed = false
		c.ranges[i] = r
	}
	return c
}

// RewardsForCount returns the milestone reward for exactly n, if any,
// followed by the reward of the first range containing n, if any
func (c *Calculator) RewardsForCount(n int) []domain.RewardSpec {
	rewards := []domain.RewardSpec{}
	if spec, ok := c.milestones[n]; ok {
		rewards = append(rewards, spec.Clone())
	}
	for _, r := range c.ranges {
		if r.Contains(n) {
			rewards = append(rewards, r.Reward.Clone())
			break
		}
	}
	return rewards
}

func energy(v float64) domain.RewardSpec {
	return domain.RewardSpec{Kind: domain.RewardEnergy, Amount: v}
}

func gold(v float64) domain.RewardSpec {
	return domain.RewardSpec{Kind: domain.RewardGold, Amount: v}
}

func nft() domain.RewardSpec {
	return domain.RewardSpec{Kind: domain.RewardNFT, Amount: 1}
}

// DefaultCalculator returns the standard referral reward tables
func DefaultCalculator() *Calculator {
	milestones := map[int]domain.RewardSpec{
		1:    energy(10),
		2:    energy(20),
		3:    energy(30),
		10:   energy(100),
		20:   energy(200),
		50:   energy(400),
		100:  energy(600),
		200:  energy(800),
		500:  energy(1000),
		1000: nft(),
		2000: nft(),
		3000: nft(),
	}
	ranges := []Range{
		{Min: 1, Max: 1, Reward: gold(100)},
		{Min: 2, Max: 2, Reward: gold(100)},
		{Min: 3, Max: 9, Reward: gold(100)},
		{Min: 11, Max: 19, Reward: gold(200)},
		{Min: 21, Max: 49, Reward: gold(400)},
		{Min: 51, Max: 99, Reward: gold(600)},
		{Min: 101, Max: 199, Reward: gold(800)},
		{Min: 201, Max: 499, Reward: gold(1000)},
		{Min: 501, Max: 999, Reward: gold(1200)},
		{Min: 1001, Max: 1999, Reward: gold(1500)},
		{Min: 2001, Max: 2999, Reward: gold(1500)},
		{Min: 3001, Max: math.MaxInt, Reward: gold(1500)},
	}
	return newCalculator(milestones, ranges)
}
