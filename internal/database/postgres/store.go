// Package postgres implements the repository interfaces on PostgreSQL
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/repository"
)

var (
	_ repository.Player     = (*Store)(nil)
	_ repository.Catalog    = (*Store)(nil)
	_ repository.GameConfig = (*Store)(nil)
	_ repository.Referral   = (*Store)(nil)
)

const resourceColumns = `user_id, gold, token, food, energy, bonus_energy,
	energy_claimed_at, slot_machine_plays, created_at, updated_at`

const entryColumns = `entry_id, user_id, reward, claimed, reason, context, created_at, updated_at`

// Store implements the repositories on a pgx connection pool
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// BeginTx starts a player transaction
func (s *Store) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	t, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &tx{tx: t}, nil
}

func (s *Store) GetResources(ctx context.Context, userID string) (*domain.UserResources, error) {
	row := s.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM user_resources WHERE user_id = $1`, userID)
	return scanResources(row)
}

func (s *Store) ListEntries(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	return collectEntries(rows)
}

func (s *Store) ListOwnedItems(ctx context.Context, userID string) ([]domain.OwnedItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_item_id, user_id, item_id, rarity, level, created_at
		FROM user_items
		WHERE user_id = $1
		ORDER BY created_at, user_item_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	items := []domain.OwnedItem{}
	for rows.Next() {
		var item domain.OwnedItem
		var rarity string
		if err := rows.Scan(&item.ID, &item.UserID, &item.ItemID, &rarity, &item.Level, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		item.Rarity = domain.Rarity(rarity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, nil
}

func (s *Store) ListClaimAudits(ctx context.Context, userID string, limit int) ([]domain.ClaimAudit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT entry_id, user_id, reward, reason, context, claimed_at
		FROM ledger_claims
		WHERE user_id = $1
		ORDER BY claimed_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAudits, err)
	}
	defer rows.Close()

	audits := []domain.ClaimAudit{}
	for rows.Next() {
		var a domain.ClaimAudit
		var reason string
		if err := rows.Scan(&a.EntryID, &a.UserID, &a.Reward, &reason, &a.Context, &a.ClaimedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAudits, err)
		}
		a.Reason = domain.RewardReason(reason)
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAudits, err)
	}
	return audits, nil
}

func scanResources(row scanner) (*domain.UserResources, error) {
	var r domain.UserResources
	err := row.Scan(&r.UserID, &r.Gold, &r.Token, &r.Food, &r.Energy, &r.BonusEnergy,
		&r.EnergyClaimedAt, &r.SlotMachinePlays, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetResources, err)
	}
	return &r, nil
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		var reason string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Reward, &e.Claimed, &reason, &e.Context, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
		}
		e.Reason = domain.RewardReason(reason)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	return entries, nil
}
