package domain

import "time"

// DailyStreak is the consecutive-day check-in state of a player
type DailyStreak struct {
	UserID        string    `json:"user_id"`
	Streak        int       `json:"streak"`
	LastClaimedAt time.Time `json:"last_claimed_at"`
}

// Referral links a referred player to the player who invited them
type Referral struct {
	ReferrerID  string     `json:"referrer_id"`
	ReferredID  string     `json:"referred_id"`
	Onboarded   bool       `json:"onboarded"`
	CreatedAt   time.Time  `json:"created_at"`
	OnboardedAt *time.Time `json:"onboarded_at,omitempty"`
}
