package domain

import (
	"time"

	"github.com/google/uuid"
)

// RewardReason records why a ledger entry was created
type RewardReason string

const (
	ReasonReferral    RewardReason = "REFERRAL"
	ReasonTask        RewardReason = "TASK"
	ReasonDaily       RewardReason = "DAILY"
	ReasonSlotMachine RewardReason = "SLOT_MACHINE"
	ReasonAdmin       RewardReason = "ADMIN"
)

// LedgerEntry is a pending reward owned by a user
type LedgerEntry struct {
	ID        uuid.UUID    `json:"id"`
	UserID    string       `json:"user_id"`
	Reward    RewardSpec   `json:"reward"`
	Claimed   bool         `json:"claimed"`
	Reason    RewardReason `json:"reason"`
	Context   int          `json:"context"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// MergeTarget reports whether spec granted for reason should be summed into e
func (e LedgerEntry) MergeTarget(spec RewardSpec, reason RewardReason) bool {
	return spec.Sumable &&
		e.Reward.Sumable &&
		!e.Claimed &&
		e.Reason == reason &&
		e.Reward.Kind == spec.Kind
}

// ClaimSkip explains why an entry of a batch claim was not paid out
type ClaimSkip struct {
	EntryID uuid.UUID `json:"entry_id"`
	Reason  string    `json:"reason"`
}

// ClaimResult is the outcome of claiming one or more ledger entries
type ClaimResult struct {
	Claimed   []LedgerEntry `json:"claimed"`
	Skipped   []ClaimSkip   `json:"skipped,omitempty"`
	Items     []OwnedItem   `json:"items,omitempty"`
	Resources UserResources `json:"resources"`
}

// ClaimAudit is an audit record written for each successful claim
type ClaimAudit struct {
	EntryID   uuid.UUID    `json:"entry_id"`
	UserID    string       `json:"user_id"`
	Reward    RewardSpec   `json:"reward"`
	Reason    RewardReason `json:"reason"`
	Context   int          `json:"context"`
	ClaimedAt time.Time    `json:"claimed_at"`
}
