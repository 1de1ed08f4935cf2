package referral

import (
	"math"
	"testing"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardsForCount_FirstReferralYieldsMilestoneAndRange(t *testing.T) {
	rewards := DefaultCalculator().RewardsForCount(1)
	require.Len(t, rewards, 2)

	milestone := rewards[0]
	assert.Equal(t, domain.RewardEnergy, milestone.Kind)
	assert.Equal(t, 10.0, milestone.Amount)
	assert.False(t, milestone.Sumable)
	assert.True(t, milestone.KeepAfterClaimed)

	ranged := rewards[1]
	assert.Equal(t, domain.RewardGold, ranged.Kind)
	assert.Equal(t, 100.0, ranged.Amount)
	assert.True(t, ranged.Sumable)
	assert.False(t, ranged.KeepAfterClaimed)
}

func TestRewardsForCount(t *testing.T) {
	calc := DefaultCalculator()

	tests := []struct {
		count int
		want  []domain.RewardSpec
	}{
		{0, nil},
		{5, []domain.RewardSpec{{Kind: domain.RewardGold, Amount: 100}}},
		{10, []domain.RewardSpec{{Kind: domain.RewardEnergy, Amount: 100}}},
		{11, []domain.RewardSpec{{Kind: domain.RewardGold, Amount: 200}}},
		{50, []domain.RewardSpec{{Kind: domain.RewardEnergy, Amount: 400}}},
		{999, []domain.RewardSpec{{Kind: domain.RewardGold, Amount: 1200}}},
		{1000, []domain.RewardSpec{{Kind: domain.RewardNFT, Amount: 1}}},
		{3000, []domain.RewardSpec{{Kind: domain.RewardNFT, Amount: 1}}},
		{1_000_000, []domain.RewardSpec{{Kind: domain.RewardGold, Amount: 1500}}},
	}

	for _, tt := range tests {
		got := calc.RewardsForCount(tt.count)
		require.Len(t, got, len(tt.want), "count %d", tt.count)
		for i := range tt.want {
			assert.Equal(t, tt.want[i].Kind, got[i].Kind, "count %d", tt.count)
			assert.Equal(t, tt.want[i].Amount, got[i].Amount, "count %d", tt.count)
		}
	}
}

func TestRewardsForCount_OnlyFirstMatchingRange(t *testing.T) {
	calc, err := NewCalculator(nil, []Range{
		{Min: 1, Max: 10, Reward: domain.RewardSpec{Kind: domain.RewardGold, Amount: 1}},
		{Min: 5, Max: math.MaxInt, Reward: domain.RewardSpec{Kind: domain.RewardGold, Amount: 2}},
	})
	require.NoError(t, err)

	rewards := calc.RewardsForCount(7)
	require.Len(t, rewards, 1)
	assert.Equal(t, 1.0, rewards[0].Amount)
}

func TestRewardsForCount_ReturnsCopies(t *testing.T) {
	calc := DefaultCalculator()

	rewards := calc.RewardsForCount(2)
	rewards[0].Amount = 0
	assert.Equal(t, 20.0, calc.RewardsForCount(2)[0].Amount)
}

func TestNewCalculator_RejectsMalformedTables(t *testing.T) {
	gold := domain.RewardSpec{Kind: domain.RewardGold, Amount: 1}
	tests := []struct {
		name       string
		milestones map[int]domain.RewardSpec
		ranges     []Range
	}{
		{"inverted range", nil, []Range{{Min: 10, Max: 5, Reward: gold}}},
		{"range below one", nil, []Range{{Min: 0, Max: 5, Reward: gold}}},
		{"range with unknown kind", nil, []Range{{Min: 1, Max: 5, Reward: domain.RewardSpec{Kind: "DIAMOND", Amount: 1}}}},
		{"non-positive milestone", map[int]domain.RewardSpec{0: gold}, nil},
		{"milestone without amount", map[int]domain.RewardSpec{3: {Kind: domain.RewardEnergy}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := NewCalculator(tt.milestones, tt.ranges)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.Nil(t, calc)
		})
	}
}
