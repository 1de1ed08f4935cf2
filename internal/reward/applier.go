package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/metrics"
	"github.com/osse101/RewardEngine_Go/internal/utils"
)

// ItemPicker finds a catalog item for a rarity; nil means no match
type ItemPicker interface {
	RandomItem(ctx context.Context, rarity domain.Rarity, rnd func() float64) (*domain.Item, error)
}

// ItemWriter persists materialised items
type ItemWriter interface {
	InsertOwnedItem(ctx context.Context, item domain.OwnedItem) error
}

// Result is the outcome of applying one reward
type Result struct {
	// Reward is the scaled reward, as stored if it is deferred
	Reward   domain.RewardSpec
	Deferred bool
	// DeferReason wraps ErrDeferredResolutionFailed or ErrPoolSettlementRequired
	DeferReason error
	Item        *domain.OwnedItem
}

// Applier turns reward specs into resource changes
type Applier struct {
	items ItemPicker
	rnd   func() float64
	now   func() time.Time
}

// NewApplier creates an applier resolving items through picker
func NewApplier(picker ItemPicker) *Applier {
	return &Applier{
		items: picker,
		rnd:   utils.RandomFloat,
		now:   time.Now,
	}
}

// Apply applies spec at multiplier bet to res. Resource changes are made on
// res only; the caller persists it. Items are written through w.
// A deferred result leaves res untouched.
func (a *Applier) Apply(ctx context.Context, w ItemWriter, res *domain.UserResources, spec domain.RewardSpec, bet int) (Result, error) {
	if bet < 1 {
		return Result{}, fmt.Errorf("%w: bet multiplier must be at least 1, got %d", domain.ErrInvalidInput, bet)
	}

	scaled := spec.Clone()
	var result Result

	switch {
	case spec.Kind.IsCounter():
		scaled = spec.Scaled(bet)
		if err := res.Credit(spec.Kind, scaled.Amount); err != nil {
			return Result{}, err
		}
		result = Result{Reward: scaled}

	case spec.Kind == domain.RewardItem:
		var err error
		result, err = a.applyItem(ctx, w, res.UserID, scaled, bet)
		if err != nil {
			return Result{}, err
		}

	case spec.Kind == domain.RewardPoolPercentage:
		scaled = spec.Scaled(bet)
		result = Result{
			Reward:      scaled,
			Deferred:    true,
			DeferReason: fmt.Errorf("%w: %.4f%% of pool", domain.ErrPoolSettlementRequired, scaled.Amount),
		}

	case spec.Kind == domain.RewardNFT:
		result = Result{
			Reward:      scaled,
			Deferred:    true,
			DeferReason: fmt.Errorf("%w: nft minting is handled externally", domain.ErrDeferredResolutionFailed),
		}

	case spec.Kind == domain.RewardSpin, spec.Kind == domain.RewardJackpot:
		// consumed by the play session itself
		result = Result{Reward: scaled}

	default:
		return Result{}, fmt.Errorf("%w: unknown reward kind %q", domain.ErrInvalidInput, spec.Kind)
	}

	outcome := metrics.OutcomeApplied
	if result.Deferred {
		outcome = metrics.OutcomeDeferred
	}
	metrics.RewardsApplied.WithLabelValues(string(spec.Kind), outcome).Inc()
	return result, nil
}

func (a *Applier) applyItem(ctx context.Context, w ItemWriter, userID string, spec domain.RewardSpec, bet int) (Result, error) {
	if spec.Item == nil || spec.Item.Rarity == "" {
		return Result{}, fmt.Errorf("%w: item reward without rarity", domain.ErrInvalidConfiguration)
	}
	// a level stored on a pending entry wins over the claim multiplier
	if spec.Item.Level == 0 {
		spec.Item.Level = bet
	}

	item, err := a.items.RandomItem(ctx, spec.Item.Rarity, a.rnd)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve %s item: %w", spec.Item.Rarity, err)
	}
	if item == nil {
		logger.FromContext(ctx).Warn(LogMsgItemDeferred, "user_id", userID, "rarity", spec.Item.Rarity)
		return Result{
			Reward:      spec,
			Deferred:    true,
			DeferReason: fmt.Errorf("%w: no catalog item has rarity %s", domain.ErrDeferredResolutionFailed, spec.Item.Rarity),
		}, nil
	}

	owned := domain.OwnedItem{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    item.ID,
		Rarity:    spec.Item.Rarity,
		Level:     spec.Item.Level,
		CreatedAt: a.now(),
	}
	if err := w.InsertOwnedItem(ctx, owned); err != nil {
		return Result{}, fmt.Errorf("failed to store owned item: %w", err)
	}
	spec.Item.ItemID = item.ID
	return Result{Reward: spec, Item: &owned}, nil
}
