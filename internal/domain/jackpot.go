package domain

import (
	"math"
	"time"
)

// JackpotEntry is one weighted outcome of a jackpot draw
type JackpotEntry struct {
	Description string     `json:"description"`
	Reward      RewardSpec `json:"reward"`
	Weight      float64    `json:"weight" validate:"gte=0"`
}

// JackpotConfig holds the shared pool and its outcome table
type JackpotConfig struct {
	Name      string         `json:"name" validate:"required"`
	Pool      float64        `json:"pool" validate:"gte=0"`
	Entries   []JackpotEntry `json:"entries" validate:"min=1,dive"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// JackpotDraw is the result of one jackpot resolution
type JackpotDraw struct {
	Description string     `json:"description"`
	Reward      RewardSpec `json:"reward"`
	Pool        float64    `json:"pool"`
}

// PoolSettlement records a debit of the jackpot pool
type PoolSettlement struct {
	Percentage float64 `json:"percentage"`
	Payout     int64   `json:"payout"`
	PoolAfter  float64 `json:"pool_after"`
}

// MaxPoolPercentage caps a single pool payout at the whole pool
const MaxPoolPercentage = 100.0

// ClampPoolPercentage limits percentage to (0, MaxPoolPercentage]
func ClampPoolPercentage(percentage float64) float64 {
	return min(percentage, MaxPoolPercentage)
}

// PoolPayout returns the gold paid for percentage% of pool, rounded down.
// The payout never exceeds the pool.
func PoolPayout(pool, percentage float64) int64 {
	if pool <= 0 || percentage <= 0 {
		return 0
	}
	percentage = ClampPoolPercentage(percentage)
	// epsilon absorbs binary rounding of decimal percentages like 0.001
	payout := math.Floor(pool*percentage/100 + 1e-9)
	return int64(min(payout, math.Floor(pool)))
}
