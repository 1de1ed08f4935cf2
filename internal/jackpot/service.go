package jackpot

import (
	"context"
	"fmt"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/metrics"
	"github.com/osse101/RewardEngine_Go/internal/repository"
	"github.com/osse101/RewardEngine_Go/internal/utils"
)

// TableSource provides the active jackpot table
type TableSource interface {
	Jackpot(ctx context.Context) (*Table, error)
	InvalidateJackpot(ctx context.Context) error
}

// Service defines jackpot operations
type Service interface {
	Spin(ctx context.Context) (domain.JackpotDraw, error)
	Current(ctx context.Context) (*domain.JackpotConfig, error)
	Settle(ctx context.Context, tx repository.PlayerTx, res *domain.UserResources, spec domain.RewardSpec) (*domain.PoolSettlement, error)
	PoolChanged(ctx context.Context)
}

type service struct {
	source TableSource
	rnd    func() float64
}

// NewService creates a jackpot service
func NewService(source TableSource) Service {
	return &service{
		source: source,
		rnd:    utils.RandomFloat,
	}
}

// Spin draws once from the active jackpot table
func (s *service) Spin(ctx context.Context) (domain.JackpotDraw, error) {
	table, err := s.source.Jackpot(ctx)
	if err != nil {
		return domain.JackpotDraw{}, err
	}
	draw := table.Draw(s.rnd)
	metrics.JackpotDraws.WithLabelValues(string(draw.Reward.Kind)).Inc()
	logger.FromContext(ctx).Info(LogMsgJackpotDrawn, "description", draw.Description, "kind", draw.Reward.Kind, "pool", draw.Pool)
	return draw, nil
}

func (s *service) Current(ctx context.Context) (*domain.JackpotConfig, error) {
	table, err := s.source.Jackpot(ctx)
	if err != nil {
		return nil, err
	}
	cfg := table.Config()
	return &cfg, nil
}

// Settle debits the pool for a POOL_PERCENTAGE reward inside tx and credits
// the payout to res as gold.
func (s *service) Settle(ctx context.Context, tx repository.PlayerTx, res *domain.UserResources, spec domain.RewardSpec) (*domain.PoolSettlement, error) {
	if spec.Kind != domain.RewardPoolPercentage {
		return nil, fmt.Errorf("%w: cannot settle %s against the jackpot pool", domain.ErrInvalidInput, spec.Kind)
	}

	table, err := s.source.Jackpot(ctx)
	if err != nil {
		return nil, err
	}
	name := table.Config().Name

	settlement, err := tx.DebitJackpotPool(ctx, name, spec.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to debit jackpot pool %s: %w", name, err)
	}
	if err := res.Credit(domain.RewardGold, float64(settlement.Payout)); err != nil {
		return nil, err
	}

	metrics.PoolSettlements.Inc()
	metrics.JackpotPool.Set(settlement.PoolAfter)
	logger.FromContext(ctx).Info(LogMsgPoolSettled,
		"user_id", res.UserID, "percentage", settlement.Percentage, "payout", settlement.Payout, "pool_after", settlement.PoolAfter)
	return settlement, nil
}

// PoolChanged refreshes the cached table after a committed debit
func (s *service) PoolChanged(ctx context.Context) {
	if err := s.source.InvalidateJackpot(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "error", err)
	}
}
