package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// tx implements repository.PlayerTx. Rows read with FOR UPDATE stay locked
// until Commit or Rollback.
type tx struct {
	tx pgx.Tx
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

// Rollback returns domain.ErrTxClosed after Commit
func (t *tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

func (t *tx) CreateResources(ctx context.Context, res domain.UserResources) error {
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO user_resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO NOTHING`,
		res.UserID, res.Gold, res.Token, res.Food, res.Energy, res.BonusEnergy,
		res.EnergyClaimedAt, res.SlotMachinePlays, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveResources, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserExists
	}
	return nil
}

func (t *tx) GetResourcesForUpdate(ctx context.Context, userID string) (*domain.UserResources, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+resourceColumns+` FROM user_resources WHERE user_id = $1 FOR UPDATE`, userID)
	return scanResources(row)
}

func (t *tx) UpdateResources(ctx context.Context, res domain.UserResources) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE user_resources
		SET gold = $2, token = $3, food = $4, energy = $5, bonus_energy = $6,
			energy_claimed_at = $7, slot_machine_plays = $8, updated_at = $9
		WHERE user_id = $1`,
		res.UserID, res.Gold, res.Token, res.Food, res.Energy, res.BonusEnergy,
		res.EnergyClaimedAt, res.SlotMachinePlays, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveResources, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *tx) ListEntriesForUpdate(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE user_id = $1 ORDER BY seq FOR UPDATE`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	return collectEntries(rows)
}

func (t *tx) InsertEntry(ctx context.Context, e domain.LedgerEntry) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO ledger_entries (entry_id, user_id, kind, sumable, reward, claimed, reason, context, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.UserID, string(e.Reward.Kind), e.Reward.Sumable, e.Reward, e.Claimed,
		string(e.Reason), e.Context, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveEntry, err)
	}
	return nil
}

func (t *tx) UpdateEntry(ctx context.Context, e domain.LedgerEntry) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE ledger_entries
		SET reward = $3, sumable = $4, claimed = $5, context = $6, updated_at = $7
		WHERE entry_id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.Reward, e.Reward.Sumable, e.Claimed, e.Context, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveEntry, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (t *tx) DeleteEntry(ctx context.Context, userID string, entryID uuid.UUID) error {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM ledger_entries WHERE entry_id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteEntry, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (t *tx) InsertClaimAudit(ctx context.Context, a domain.ClaimAudit) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO ledger_claims (entry_id, user_id, reward, reason, context, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.EntryID, a.UserID, a.Reward, string(a.Reason), a.Context, a.ClaimedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveAudit, err)
	}
	return nil
}

func (t *tx) InsertOwnedItem(ctx context.Context, item domain.OwnedItem) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO user_items (user_item_id, user_id, item_id, rarity, level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.UserID, item.ItemID, string(item.Rarity), item.Level, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveItem, err)
	}
	return nil
}

func (t *tx) GetStreakForUpdate(ctx context.Context, userID string) (*domain.DailyStreak, error) {
	var s domain.DailyStreak
	err := t.tx.QueryRow(ctx, `
		SELECT user_id, streak, last_claimed_at
		FROM daily_streaks
		WHERE user_id = $1
		FOR UPDATE`, userID).Scan(&s.UserID, &s.Streak, &s.LastClaimedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStreak, err)
	}
	return &s, nil
}

func (t *tx) UpsertStreak(ctx context.Context, s domain.DailyStreak) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO daily_streaks (user_id, streak, last_claimed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET streak = EXCLUDED.streak, last_claimed_at = EXCLUDED.last_claimed_at`,
		s.UserID, s.Streak, s.LastClaimedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveStreak, err)
	}
	return nil
}

func (t *tx) MarkReferralOnboarded(ctx context.Context, referredID string, at time.Time) (*domain.Referral, bool, error) {
	row := t.tx.QueryRow(ctx, `
		UPDATE referrals
		SET onboarded = TRUE, onboarded_at = $2
		WHERE referred_id = $1 AND NOT onboarded
		RETURNING `+referralColumns, referredID, at)
	ref, err := scanReferral(row)
	if err == nil {
		return ref, true, nil
	}
	if !errors.Is(err, domain.ErrReferralNotFound) {
		return nil, false, err
	}

	// Either unknown or onboarded before
	row = t.tx.QueryRow(ctx, `SELECT `+referralColumns+` FROM referrals WHERE referred_id = $1`, referredID)
	ref, err = scanReferral(row)
	if err != nil {
		return nil, false, err
	}
	return ref, false, nil
}

func (t *tx) CountOnboardedReferrals(ctx context.Context, referrerID string) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1 AND onboarded`, referrerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountReferrals, err)
	}
	return n, nil
}

// DebitJackpotPool computes and subtracts the payout in a single UPDATE so
// concurrent debits each see the pool left by the previous one.
func (t *tx) DebitJackpotPool(ctx context.Context, name string, percentage float64) (*domain.PoolSettlement, error) {
	percentage = domain.ClampPoolPercentage(percentage)

	var after, payout float64
	err := t.tx.QueryRow(ctx, `
		UPDATE jackpots
		SET pool = pool - LEAST(FLOOR(pool * $2 / 100 + 1e-9), FLOOR(pool)),
		    last_payout = LEAST(FLOOR(pool * $2 / 100 + 1e-9), FLOOR(pool)),
		    updated_at = NOW()
		WHERE name = $1 AND LEAST(FLOOR(pool * $2 / 100 + 1e-9), FLOOR(pool)) >= 1
		RETURNING pool, last_payout`, name, percentage).Scan(&after, &payout)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jackpots WHERE name = $1)`, name).Scan(&exists); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDebitPool, err)
		}
		if !exists {
			return nil, domain.ErrGameConfigurationNotFound
		}
		return nil, domain.ErrJackpotPoolInsufficient
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDebitPool, err)
	}
	return &domain.PoolSettlement{Percentage: percentage, Payout: int64(payout), PoolAfter: after}, nil
}
