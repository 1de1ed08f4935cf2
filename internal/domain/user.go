package domain

import (
	"fmt"
	"math"
	"time"
)

// Player resource defaults
const (
	DefaultEnergy  = 50
	MaxEnergyRegen = 50
)

// UserResources holds the numeric counters of a player
type UserResources struct {
	UserID           string    `json:"user_id"`
	Gold             int64     `json:"gold"`
	Token            int64     `json:"token"`
	Food             int64     `json:"food"`
	Energy           int       `json:"energy"`
	BonusEnergy      int       `json:"bonus_energy"`
	EnergyClaimedAt  time.Time `json:"energy_claimed_at"`
	SlotMachinePlays int       `json:"slot_machine_plays"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewUserResources returns the starting resources for a new player
func NewUserResources(userID string, now time.Time) UserResources {
	return UserResources{
		UserID:          userID,
		Energy:          DefaultEnergy,
		EnergyClaimedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Credit adds amount (rounded) to the counter matching kind. The counter
// may not drop below zero.
func (r *UserResources) Credit(kind RewardKind, amount float64) error {
	delta := int64(math.Round(amount))

	var counter *int64
	switch kind {
	case RewardGold:
		counter = &r.Gold
	case RewardToken:
		counter = &r.Token
	case RewardFood:
		counter = &r.Food
	case RewardEnergy:
		if int64(r.Energy)+delta < 0 {
			return fmt.Errorf("%w: energy %d, change %d", ErrInsufficientResource, r.Energy, delta)
		}
		r.Energy += int(delta)
		return nil
	default:
		return fmt.Errorf("%w: %s is not a resource counter", ErrInvalidInput, kind)
	}

	if *counter+delta < 0 {
		return fmt.Errorf("%w: %s %d, change %d", ErrInsufficientResource, kind, *counter, delta)
	}
	*counter += delta
	return nil
}
