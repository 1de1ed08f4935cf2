package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/repository"
)

type tx struct {
	store *Store
	st    *state
	done  bool
}

// BeginTx locks the store and starts a transaction on a copy of its state
func (s *Store) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	s.mu.Lock()
	return &tx{store: s, st: s.st.clone()}, nil
}

func (t *tx) Commit(context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	t.store.st = t.st
	t.store.mu.Unlock()
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *tx) CreateResources(_ context.Context, res domain.UserResources) error {
	if _, exists := t.st.resources[res.UserID]; exists {
		return domain.ErrUserExists
	}
	t.st.resources[res.UserID] = res
	return nil
}

func (t *tx) GetResourcesForUpdate(_ context.Context, userID string) (*domain.UserResources, error) {
	res, ok := t.st.resources[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &res, nil
}

func (t *tx) UpdateResources(_ context.Context, res domain.UserResources) error {
	if _, ok := t.st.resources[res.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	t.st.resources[res.UserID] = res
	return nil
}

func (t *tx) ListEntriesForUpdate(_ context.Context, userID string) ([]domain.LedgerEntry, error) {
	return cloneEntries(t.st.entries[userID]), nil
}

func (t *tx) InsertEntry(_ context.Context, entry domain.LedgerEntry) error {
	entry.Reward = entry.Reward.Clone()
	t.st.entries[entry.UserID] = append(t.st.entries[entry.UserID], entry)
	return nil
}

func (t *tx) UpdateEntry(_ context.Context, entry domain.LedgerEntry) error {
	entries := t.st.entries[entry.UserID]
	for i := range entries {
		if entries[i].ID == entry.ID {
			entry.Reward = entry.Reward.Clone()
			entries[i] = entry
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

func (t *tx) DeleteEntry(_ context.Context, userID string, entryID uuid.UUID) error {
	entries := t.st.entries[userID]
	for i := range entries {
		if entries[i].ID == entryID {
			t.st.entries[userID] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

func (t *tx) InsertClaimAudit(_ context.Context, audit domain.ClaimAudit) error {
	t.st.audits[audit.UserID] = append(t.st.audits[audit.UserID], audit)
	return nil
}

func (t *tx) InsertOwnedItem(_ context.Context, item domain.OwnedItem) error {
	t.st.items[item.UserID] = append(t.st.items[item.UserID], item)
	return nil
}

func (t *tx) GetStreakForUpdate(_ context.Context, userID string) (*domain.DailyStreak, error) {
	streak, ok := t.st.streaks[userID]
	if !ok {
		return nil, nil
	}
	return &streak, nil
}

func (t *tx) UpsertStreak(_ context.Context, streak domain.DailyStreak) error {
	t.st.streaks[streak.UserID] = streak
	return nil
}

func (t *tx) MarkReferralOnboarded(_ context.Context, referredID string, at time.Time) (*domain.Referral, bool, error) {
	ref, ok := t.st.referrals[referredID]
	if !ok {
		return nil, false, domain.ErrReferralNotFound
	}
	if ref.Onboarded {
		ref = cloneReferral(ref)
		return &ref, false, nil
	}
	ref.Onboarded = true
	ref.OnboardedAt = &at
	t.st.referrals[referredID] = ref
	ref = cloneReferral(ref)
	return &ref, true, nil
}

func (t *tx) CountOnboardedReferrals(_ context.Context, referrerID string) (int, error) {
	n := 0
	for _, ref := range t.st.referrals {
		if ref.ReferrerID == referrerID && ref.Onboarded {
			n++
		}
	}
	return n, nil
}

func (t *tx) DebitJackpotPool(_ context.Context, name string, percentage float64) (*domain.PoolSettlement, error) {
	cfg, ok := t.st.jackpots[name]
	if !ok {
		return nil, domain.ErrGameConfigurationNotFound
	}
	percentage = domain.ClampPoolPercentage(percentage)
	payout := domain.PoolPayout(cfg.Pool, percentage)
	if payout <= 0 {
		return nil, domain.ErrJackpotPoolInsufficient
	}
	cfg.Pool -= float64(payout)
	cfg.UpdatedAt = time.Now()
	t.st.jackpots[name] = cfg
	return &domain.PoolSettlement{Percentage: percentage, Payout: payout, PoolAfter: cfg.Pool}, nil
}
