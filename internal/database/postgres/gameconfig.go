package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

func (s *Store) GetSlotMachine(ctx context.Context, name string) (*domain.SlotMachineConfig, error) {
	cfg := domain.SlotMachineConfig{Name: name}
	err := s.db.QueryRow(ctx, `
		SELECT reels, combinations, updated_at
		FROM slot_machines
		WHERE name = $1`, name).Scan(&cfg.Reels, &cfg.Combinations, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameConfigurationNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetGameConfig, err)
	}
	return &cfg, nil
}

func (s *Store) SaveSlotMachine(ctx context.Context, cfg domain.SlotMachineConfig) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO slot_machines (name, reels, combinations, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET reels = EXCLUDED.reels, combinations = EXCLUDED.combinations, updated_at = EXCLUDED.updated_at`,
		cfg.Name, cfg.Reels, cfg.Combinations, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveGameConfig, err)
	}
	return nil
}

func (s *Store) GetJackpot(ctx context.Context, name string) (*domain.JackpotConfig, error) {
	cfg := domain.JackpotConfig{Name: name}
	err := s.db.QueryRow(ctx, `
		SELECT pool, entries, updated_at
		FROM jackpots
		WHERE name = $1`, name).Scan(&cfg.Pool, &cfg.Entries, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameConfigurationNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetGameConfig, err)
	}
	return &cfg, nil
}

func (s *Store) SaveJackpot(ctx context.Context, cfg domain.JackpotConfig) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO jackpots (name, pool, entries, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET pool = EXCLUDED.pool, entries = EXCLUDED.entries, updated_at = EXCLUDED.updated_at`,
		cfg.Name, cfg.Pool, cfg.Entries, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveGameConfig, err)
	}
	return nil
}
