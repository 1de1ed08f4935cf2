package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// Player defines the persistence of per-player state: resources, ledger
// entries, owned items, streaks and referral progress.
// Callers holding a PlayerTx must not call the non-transactional methods.
type Player interface {
	BeginTx(ctx context.Context) (PlayerTx, error)

	GetResources(ctx context.Context, userID string) (*domain.UserResources, error)
	ListEntries(ctx context.Context, userID string) ([]domain.LedgerEntry, error)
	ListOwnedItems(ctx context.Context, userID string) ([]domain.OwnedItem, error)
	ListClaimAudits(ctx context.Context, userID string, limit int) ([]domain.ClaimAudit, error)
}

// PlayerTx is a transaction over a single player's state.
// Methods ending in ForUpdate lock the returned row until commit.
type PlayerTx interface {
	Tx

	CreateResources(ctx context.Context, res domain.UserResources) error
	GetResourcesForUpdate(ctx context.Context, userID string) (*domain.UserResources, error)
	UpdateResources(ctx context.Context, res domain.UserResources) error

	// ListEntriesForUpdate returns the unclaimed entries of a user, oldest first
	ListEntriesForUpdate(ctx context.Context, userID string) ([]domain.LedgerEntry, error)
	InsertEntry(ctx context.Context, entry domain.LedgerEntry) error
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error
	DeleteEntry(ctx context.Context, userID string, entryID uuid.UUID) error
	InsertClaimAudit(ctx context.Context, audit domain.ClaimAudit) error

	InsertOwnedItem(ctx context.Context, item domain.OwnedItem) error

	// GetStreakForUpdate returns nil when the user has never checked in
	GetStreakForUpdate(ctx context.Context, userID string) (*domain.DailyStreak, error)
	UpsertStreak(ctx context.Context, streak domain.DailyStreak) error

	// MarkReferralOnboarded flips the onboarded flag of the user's referral.
	// The bool is false when the referral was already onboarded. It returns
	// ErrReferralNotFound when the user was never referred.
	MarkReferralOnboarded(ctx context.Context, referredID string, at time.Time) (*domain.Referral, bool, error)
	// CountOnboardedReferrals counts the onboarded referrals of a referrer
	CountOnboardedReferrals(ctx context.Context, referrerID string) (int, error)

	// DebitJackpotPool removes percentage% of the named pool in one atomic
	// step and reports the payout. Percentages above 100 pay the whole pool.
	// It returns ErrJackpotPoolInsufficient when the payout rounds to zero.
	DebitJackpotPool(ctx context.Context, name string, percentage float64) (*domain.PoolSettlement, error)
}
