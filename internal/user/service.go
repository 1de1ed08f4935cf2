package user

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/concurrency"
	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/repository"
)

// EnergyClaim is the outcome of an energy regeneration claim
type EnergyClaim struct {
	Gained    int                  `json:"gained"`
	Resources domain.UserResources `json:"resources"`
}

// Profile bundles a player's resources with the items they own
type Profile struct {
	Resources domain.UserResources `json:"resources"`
	Items     []domain.OwnedItem   `json:"items"`
}

// Service defines player account operations
type Service interface {
	Register(ctx context.Context, userID string) (*domain.UserResources, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	// ClaimEnergy credits one energy per full minute since the last claim,
	// capped at MaxEnergyRegen, plus any bonus energy
	ClaimEnergy(ctx context.Context, userID string) (*EnergyClaim, error)
}

type service struct {
	repo  repository.Player
	locks *concurrency.LockManager
	now   func() time.Time
}

// NewService creates a user service
func NewService(repo repository.Player, locks *concurrency.LockManager) Service {
	return &service{
		repo:  repo,
		locks: locks,
		now:   time.Now,
	}
}

func (s *service) Register(ctx context.Context, userID string) (*domain.UserResources, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	res := domain.NewUserResources(userID, s.now())
	if err := tx.CreateResources(ctx, res); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgUserRegistered, "user_id", userID)
	return &res, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	res, err := s.repo.GetResources(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListOwnedItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned items: %w", err)
	}
	if items == nil {
		items = []domain.OwnedItem{}
	}
	return &Profile{Resources: *res, Items: items}, nil
}

func (s *service) ClaimEnergy(ctx context.Context, userID string) (*EnergyClaim, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	res, err := tx.GetResourcesForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	gained := RegeneratedEnergy(res.EnergyClaimedAt, now) + res.BonusEnergy
	if gained <= 0 {
		return &EnergyClaim{Resources: *res}, nil
	}

	res.Energy += gained
	res.BonusEnergy = 0
	res.EnergyClaimedAt = now
	res.UpdatedAt = now
	if err := tx.UpdateResources(ctx, *res); err != nil {
		return nil, fmt.Errorf("failed to update resources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgEnergyClaimed, "user_id", userID, "gained", gained, "energy", res.Energy)
	return &EnergyClaim{Gained: gained, Resources: *res}, nil
}

// RegeneratedEnergy returns the energy regenerated between last and now
func RegeneratedEnergy(last, now time.Time) int {
	if last.IsZero() || !now.After(last) {
		return 0
	}
	minutes := int(now.Sub(last) / EnergyRegenInterval)
	return min(minutes, domain.MaxEnergyRegen)
}
