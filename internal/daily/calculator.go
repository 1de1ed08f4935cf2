package daily

import (
	"fmt"
	"math"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// WrapBonus is added to the reward multiplier for every full pass
// through the streak table
const WrapBonus = 0.1

// Calculator maps consecutive check-in days to rewards
type Calculator struct {
	table []domain.RewardSpec
	loc   *time.Location
}

// NewCalculator creates a calculator over table. Days are compared in loc.
// The table must be non-empty and hold only positive, known rewards.
func NewCalculator(table []domain.RewardSpec, loc *time.Location) (*Calculator, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: streak table is empty", domain.ErrInvalidConfiguration)
	}
	for i, spec := range table {
		if !spec.Kind.Valid() {
			return nil, fmt.Errorf("%w: streak day %d has unknown kind %q", domain.ErrInvalidConfiguration, i+1, spec.Kind)
		}
		if spec.Amount <= 0 || math.IsInf(spec.Amount, 0) || math.IsNaN(spec.Amount) {
			return nil, fmt.Errorf("%w: streak day %d has invalid amount %v", domain.ErrInvalidConfiguration, i+1, spec.Amount)
		}
	}
	return newCalculator(table, loc), nil
}

func newCalculator(table []domain.RewardSpec, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	c := &Calculator{table: make([]domain.RewardSpec, len(table)), loc: loc}
	for i, spec := range table {
		c.table[i] = spec.Clone()
	}
	return c
}

// DefaultCalculator returns the standard seven day table, in UTC
func DefaultCalculator() *Calculator {
	return newCalculator([]domain.RewardSpec{
		{Kind: domain.RewardEnergy, Amount: 50},
		{Kind: domain.RewardEnergy, Amount: 70},
		{Kind: domain.RewardEnergy, Amount: 100},
		{Kind: domain.RewardGold, Amount: 500},
		{Kind: domain.RewardGold, Amount: 1000},
		{Kind: domain.RewardEnergy, Amount: 200},
		{Kind: domain.RewardGold, Amount: 2000},
	}, time.UTC)
}

// Advance computes the streak after a check-in at now. A check-in on the
// same day as lastClaimed changes nothing and reports ok=false. A check-in
// the day after extends the streak; any other gap restarts it at 1.
// A zero lastClaimed means the player never checked in.
func (c *Calculator) Advance(lastClaimed, now time.Time, streak int) (next int, reward domain.RewardSpec, ok bool) {
	today := c.day(now)
	if !lastClaimed.IsZero() {
		last := c.day(lastClaimed)
		switch {
		case last.Equal(today):
			return streak, domain.RewardSpec{}, false
		case last.AddDate(0, 0, 1).Equal(today):
			next = streak + 1
		}
	}
	if next < 1 {
		next = 1
	}
	return next, c.RewardFor(next), true
}

// RewardFor returns the reward for the given streak length
func (c *Calculator) RewardFor(streak int) domain.RewardSpec {
	if streak < 1 {
		streak = 1
	}
	idx := (streak - 1) % len(c.table)
	wraps := (streak - 1) / len(c.table)

	spec := c.table[idx].Clone()
	spec.Amount += spec.Amount * WrapBonus * float64(wraps)
	return spec
}

// Len returns the table length
func (c *Calculator) Len() int {
	return len(c.table)
}

func (c *Calculator) day(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}
