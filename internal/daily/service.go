package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/concurrency"
	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/metrics"
	"github.com/osse101/RewardEngine_Go/internal/repository"
)

// LedgerAppender queues rewards for a player
type LedgerAppender interface {
	AppendTx(ctx context.Context, tx repository.PlayerTx, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error)
}

// CheckIn is the outcome of a daily check-in. Claimed is false when the
// player already checked in today.
type CheckIn struct {
	Streak  domain.DailyStreak  `json:"streak"`
	Entry   *domain.LedgerEntry `json:"entry,omitempty"`
	Claimed bool                `json:"claimed"`
}

// Service defines daily check-in operations
type Service interface {
	AdvanceStreak(ctx context.Context, userID string) (*CheckIn, error)
}

type service struct {
	repo   repository.Player
	locks  *concurrency.LockManager
	ledger LedgerAppender
	calc   *Calculator
	now    func() time.Time
}

// NewService creates a daily check-in service
func NewService(repo repository.Player, locks *concurrency.LockManager, ledger LedgerAppender, calc *Calculator) Service {
	return &service{
		repo:   repo,
		locks:  locks,
		ledger: ledger,
		calc:   calc,
		now:    time.Now,
	}
}

// AdvanceStreak records today's check-in and queues its reward with reason
// DAILY and the new streak as context
func (s *service) AdvanceStreak(ctx context.Context, userID string) (*CheckIn, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetResourcesForUpdate(ctx, userID); err != nil {
		return nil, err
	}
	current, err := tx.GetStreakForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}
	if current == nil {
		current = &domain.DailyStreak{UserID: userID}
	}

	now := s.now()
	next, spec, ok := s.calc.Advance(current.LastClaimedAt, now, current.Streak)
	if !ok {
		metrics.DailyCheckins.WithLabelValues(metrics.OutcomeNoop).Inc()
		log.Info(LogMsgAlreadyClaimed, "user_id", userID, "streak", current.Streak)
		return &CheckIn{Streak: *current}, nil
	}

	updated := domain.DailyStreak{UserID: userID, Streak: next, LastClaimedAt: now}
	if err := tx.UpsertStreak(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}
	entry, err := s.ledger.AppendTx(ctx, tx, userID, spec, domain.ReasonDaily, next)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.DailyCheckins.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info(LogMsgStreakAdvanced, "user_id", userID, "streak", next, "kind", spec.Kind, "amount", spec.Amount)
	return &CheckIn{Streak: updated, Entry: entry, Claimed: true}, nil
}
