package daily

import (
	"testing"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
}

func TestRewardFor_WrapsWithBonus(t *testing.T) {
	calc := DefaultCalculator()

	first := calc.RewardFor(1)
	assert.Equal(t, domain.RewardEnergy, first.Kind)
	assert.Equal(t, 50.0, first.Amount)

	eighth := calc.RewardFor(8)
	assert.Equal(t, domain.RewardEnergy, eighth.Kind)
	assert.InDelta(t, 55.0, eighth.Amount, 1e-9, "index 0 with +10%")

	seventh := calc.RewardFor(7)
	assert.Equal(t, domain.RewardGold, seventh.Kind)
	assert.InDelta(t, 2000.0, seventh.Amount, 1e-9)

	fifteenth := calc.RewardFor(15)
	assert.InDelta(t, 60.0, fifteenth.Amount, 1e-9, "two wraps")
}

func TestAdvance_DayGaps(t *testing.T) {
	calc := DefaultCalculator()

	tests := []struct {
		name       string
		last       time.Time
		now        time.Time
		streak     int
		wantStreak int
		wantOK     bool
	}{
		{"first check-in", time.Time{}, day(10, 9), 0, 1, true},
		{"next day", day(10, 23), day(11, 0), 7, 8, true},
		{"same day", day(10, 1), day(10, 22), 3, 3, false},
		{"two day gap", day(10, 12), day(12, 12), 5, 1, true},
		{"long gap", day(1, 12), day(20, 12), 30, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, reward, ok := calc.Advance(tt.last, tt.now, tt.streak)
			assert.Equal(t, tt.wantStreak, next)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, calc.RewardFor(next), reward)
			} else {
				assert.Empty(t, reward.Kind)
			}
		})
	}
}

func TestAdvance_ComparesDaysInConfiguredZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	calc, err := NewCalculator([]domain.RewardSpec{{Kind: domain.RewardGold, Amount: 1}}, loc)
	require.NoError(t, err)

	// 01:00 and 02:00 local on the 11th
	last := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC)
	_, _, ok := calc.Advance(last, now, 1)
	assert.False(t, ok)

	// 23:00 and 01:00 local are consecutive local days
	last = time.Date(2026, time.March, 10, 13, 0, 0, 0, time.UTC)
	now = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	next, _, ok := calc.Advance(last, now, 1)
	assert.True(t, ok)
	assert.Equal(t, 2, next)
}

func TestAdvance_AcrossMonthBoundary(t *testing.T) {
	calc := DefaultCalculator()
	last := time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)

	next, _, ok := calc.Advance(last, now, 2)
	assert.True(t, ok)
	assert.Equal(t, 3, next)
}

func TestNewCalculator_RejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name  string
		table []domain.RewardSpec
	}{
		{"nil table", nil},
		{"empty table", []domain.RewardSpec{}},
		{"unknown kind", []domain.RewardSpec{{Kind: "DIAMOND", Amount: 1}}},
		{"zero amount", []domain.RewardSpec{{Kind: domain.RewardGold, Amount: 1}, {Kind: domain.RewardGold}}},
		{"negative amount", []domain.RewardSpec{{Kind: domain.RewardEnergy, Amount: -5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := NewCalculator(tt.table, time.UTC)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.Nil(t, calc)
		})
	}
}
