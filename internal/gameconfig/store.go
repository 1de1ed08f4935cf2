// Package gameconfig keeps the active slot machine and jackpot
// configuration as compiled, read-only snapshots.
package gameconfig

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/jackpot"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/metrics"
	"github.com/osse101/RewardEngine_Go/internal/repository"
	"github.com/osse101/RewardEngine_Go/internal/slots"
	"github.com/osse101/RewardEngine_Go/internal/validation"
)

var (
	_ slots.MachineSource = (*Store)(nil)
	_ jackpot.TableSource = (*Store)(nil)
)

// Store serves configuration snapshots. Readers never touch the
// repository; snapshots change on Load, Refresh, Invalidate and updates.
type Store struct {
	repo      repository.GameConfig
	validator validation.SchemaValidator

	// mu serialises writers
	mu      sync.Mutex
	machine atomic.Pointer[slots.Machine]
	table   atomic.Pointer[jackpot.Table]
	now     func() time.Time
}

// NewStore creates an empty store. Call Load before serving requests.
func NewStore(repo repository.GameConfig, validator validation.SchemaValidator) *Store {
	return &Store{
		repo:      repo,
		validator: validator,
		now:       time.Now,
	}
}

// Load reads both configurations, seeding the built-in defaults when the
// repository has none
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadSlotMachine(ctx, true); err != nil {
		return err
	}
	if err := s.loadJackpot(ctx, true); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgConfigLoaded, "slot_machine", SlotMachineName, "jackpot", JackpotName)
	return nil
}

// Refresh reloads both configurations from the repository. On failure the
// previous snapshots stay active.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := errors.Join(s.loadSlotMachine(ctx, false), s.loadJackpot(ctx, false))
	if err != nil {
		metrics.ConfigRefreshes.WithLabelValues(metrics.OutcomeFailed).Inc()
		return err
	}
	metrics.ConfigRefreshes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return nil
}

// SlotMachine returns the active slot machine
func (s *Store) SlotMachine(context.Context) (*slots.Machine, error) {
	m := s.machine.Load()
	if m == nil {
		return nil, fmt.Errorf("%w: slot machine %s not loaded", domain.ErrGameConfigurationNotFound, SlotMachineName)
	}
	return m, nil
}

// Jackpot returns the active jackpot table
func (s *Store) Jackpot(context.Context) (*jackpot.Table, error) {
	t := s.table.Load()
	if t == nil {
		return nil, fmt.Errorf("%w: jackpot %s not loaded", domain.ErrGameConfigurationNotFound, JackpotName)
	}
	return t, nil
}

// InvalidateJackpot reloads the jackpot, typically after its pool changed
func (s *Store) InvalidateJackpot(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadJackpot(ctx, false)
}

// UpdateSlotMachine validates, stores and activates cfg
func (s *Store) UpdateSlotMachine(ctx context.Context, cfg domain.SlotMachineConfig) (*domain.SlotMachineConfig, error) {
	if cfg.Name == "" {
		cfg.Name = SlotMachineName
	}
	if err := s.validator.ValidateValue(cfg, SchemaSlotMachine); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	cfg.UpdatedAt = s.now()
	machine, err := slots.Compile(cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveSlotMachine(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save slot machine: %w", err)
	}
	if cfg.Name == SlotMachineName {
		s.machine.Store(machine)
	}
	logger.FromContext(ctx).Info(LogMsgConfigUpdated, "slot_machine", cfg.Name, "combinations", len(cfg.Combinations))
	return &cfg, nil
}

// UpdateJackpot validates, stores and activates cfg
func (s *Store) UpdateJackpot(ctx context.Context, cfg domain.JackpotConfig) (*domain.JackpotConfig, error) {
	if cfg.Name == "" {
		cfg.Name = JackpotName
	}
	if err := s.validator.ValidateValue(cfg, SchemaJackpot); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	cfg.UpdatedAt = s.now()
	table, err := jackpot.Compile(cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveJackpot(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save jackpot: %w", err)
	}
	if cfg.Name == JackpotName {
		s.table.Store(table)
		metrics.JackpotPool.Set(cfg.Pool)
	}
	logger.FromContext(ctx).Info(LogMsgConfigUpdated, "jackpot", cfg.Name, "entries", len(cfg.Entries), "pool", cfg.Pool)
	return &cfg, nil
}

func (s *Store) loadSlotMachine(ctx context.Context, seed bool) error {
	cfg, err := s.repo.GetSlotMachine(ctx, SlotMachineName)
	if errors.Is(err, domain.ErrGameConfigurationNotFound) && seed {
		def, derr := DefaultSlotMachine(s.validator)
		if derr != nil {
			return derr
		}
		def.UpdatedAt = s.now()
		if err := s.repo.SaveSlotMachine(ctx, def); err != nil {
			return fmt.Errorf("failed to seed slot machine: %w", err)
		}
		logger.FromContext(ctx).Info(LogMsgConfigSeeded, "slot_machine", def.Name)
		cfg, err = &def, nil
	}
	if err != nil {
		return fmt.Errorf("failed to load slot machine %s: %w", SlotMachineName, err)
	}

	machine, err := slots.Compile(*cfg)
	if err != nil {
		return err
	}
	s.machine.Store(machine)
	return nil
}

func (s *Store) loadJackpot(ctx context.Context, seed bool) error {
	cfg, err := s.repo.GetJackpot(ctx, JackpotName)
	if errors.Is(err, domain.ErrGameConfigurationNotFound) && seed {
		def, derr := DefaultJackpot(s.validator)
		if derr != nil {
			return derr
		}
		def.UpdatedAt = s.now()
		if err := s.repo.SaveJackpot(ctx, def); err != nil {
			return fmt.Errorf("failed to seed jackpot: %w", err)
		}
		logger.FromContext(ctx).Info(LogMsgConfigSeeded, "jackpot", def.Name)
		cfg, err = &def, nil
	}
	if err != nil {
		return fmt.Errorf("failed to load jackpot %s: %w", JackpotName, err)
	}

	table, err := jackpot.Compile(*cfg)
	if err != nil {
		return err
	}
	s.table.Store(table)
	metrics.JackpotPool.Set(cfg.Pool)
	return nil
}
