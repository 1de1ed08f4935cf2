package slots

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/concurrency"
	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/metrics"
	"github.com/osse101/RewardEngine_Go/internal/repository"
	"github.com/osse101/RewardEngine_Go/internal/reward"
	"github.com/osse101/RewardEngine_Go/internal/utils"
)

// MachineSource provides the active slot machine
type MachineSource interface {
	SlotMachine(ctx context.Context) (*Machine, error)
}

// JackpotSpinner draws from the jackpot table
type JackpotSpinner interface {
	Spin(ctx context.Context) (domain.JackpotDraw, error)
}

// RewardApplier applies a reward to a player's resources
type RewardApplier interface {
	Apply(ctx context.Context, w reward.ItemWriter, res *domain.UserResources, spec domain.RewardSpec, bet int) (reward.Result, error)
}

// LedgerAppender stores rewards that could not be applied immediately
type LedgerAppender interface {
	AppendTx(ctx context.Context, tx repository.PlayerTx, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error)
}

// JackpotNotifier announces jackpot wins
type JackpotNotifier interface {
	NotifyJackpot(ctx context.Context, userID string, draw domain.JackpotDraw) error
}

// Service defines the interface for slot machine operations
type Service interface {
	Play(ctx context.Context, userID string, bet int) (*domain.PlayResult, error)
	Config(ctx context.Context) (*domain.SlotMachineConfig, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo     repository.Player
	locks    *concurrency.LockManager
	machines MachineSource
	jackpot  JackpotSpinner
	applier  RewardApplier
	ledger   LedgerAppender
	notifier JackpotNotifier
	rnd      func() float64 // Injectable for testing
	now      func() time.Time
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewService creates a new slot machine service. notifier may be nil.
func NewService(
	repo repository.Player,
	locks *concurrency.LockManager,
	machines MachineSource,
	jackpot JackpotSpinner,
	applier RewardApplier,
	ledger LedgerAppender,
	notifier JackpotNotifier,
) Service {
	return &service{
		repo:     repo,
		locks:    locks,
		machines: machines,
		jackpot:  jackpot,
		applier:  applier,
		ledger:   ledger,
		notifier: notifier,
		rnd:      utils.RandomFloat,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}
}

// Play runs one slot machine session for the user at the given bet
// multiplier. Energy is debited, rewards are applied and anything that
// cannot be applied yet is queued in the ledger, all in one transaction.
func (s *service) Play(ctx context.Context, userID string, bet int) (*domain.PlayResult, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if bet < MinBetMultiplier || bet > MaxBetMultiplier {
		return nil, fmt.Errorf("%w: bet multiplier must be between %d and %d, got %d",
			domain.ErrInvalidInput, MinBetMultiplier, MaxBetMultiplier, bet)
	}

	machine, err := s.machines.SlotMachine(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot machine: %w", err)
	}

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
	if res.Energy < bet {
		return nil, fmt.Errorf("%w: energy %d, bet %d", domain.ErrInsufficientResource, res.Energy, bet)
	}

	res.Energy -= bet
	res.SlotMachinePlays++
	log.Info(LogMsgPlayStarted, "user_id", userID, "bet", bet, "play", res.SlotMachinePlays)

	session := NewSession(machine, bet, s.rnd, func() (domain.JackpotDraw, error) {
		return s.jackpot.Spin(ctx)
	})
	script, err := session.Run()
	if err != nil {
		return nil, err
	}
	if session.RolledBack() >= MaxRolledBackTurns {
		log.Warn(LogMsgRollbackCapReached, "user_id", userID, "rolled_back", session.RolledBack())
	}

	result := &domain.PlayResult{
		Script:     script,
		BonusTurns: session.BonusTurns(),
		RolledBack: session.RolledBack(),
	}
	var jackpots []domain.JackpotDraw

	for _, turn := range script {
		if turn.Jackpot != nil {
			jackpots = append(jackpots, *turn.Jackpot)
		}
		for _, spec := range turn.Rewards {
			if err := s.settle(ctx, tx, res, spec, turn.BetMultiplier, result); err != nil {
				return nil, err
			}
		}
	}

	res.UpdatedAt = s.now()
	if err := tx.UpdateResources(ctx, *res); err != nil {
		return nil, fmt.Errorf("failed to update resources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	result.Resources = *res

	metrics.SlotPlays.Inc()
	metrics.SlotTurns.Add(float64(len(script)))
	metrics.SlotRollbacks.Add(float64(session.RolledBack()))
	log.Info(LogMsgPlayCompleted,
		"user_id", userID, "turns", len(script), "bonus_turns", result.BonusTurns,
		"pending", len(result.Pending), "energy", res.Energy)

	for _, draw := range jackpots {
		s.notifyAsync(ctx, userID, draw)
	}
	return result, nil
}

// settle applies one turn reward. SPIN and JACKPOT were consumed by the
// session; deferred rewards are queued in the ledger already scaled.
func (s *service) settle(ctx context.Context, tx repository.PlayerTx, res *domain.UserResources, spec domain.RewardSpec, bet int, result *domain.PlayResult) error {
	if spec.Kind == domain.RewardSpin || spec.Kind == domain.RewardJackpot {
		return nil
	}

	applied, err := s.applier.Apply(ctx, tx, res, spec, bet)
	if err != nil {
		return fmt.Errorf("failed to apply %s reward: %w", spec.Kind, err)
	}
	if applied.Item != nil {
		result.Items = append(result.Items, *applied.Item)
	}
	if !applied.Deferred {
		return nil
	}

	pending := applied.Reward
	entry, err := s.ledger.AppendTx(ctx, tx, res.UserID, pending, domain.ReasonSlotMachine, res.SlotMachinePlays)
	if err != nil {
		return fmt.Errorf("failed to queue deferred reward: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgRewardDeferred,
		"user_id", res.UserID, "kind", pending.Kind, "amount", pending.Amount, "reason", applied.DeferReason)
	result.Pending = append(result.Pending, *entry)
	return nil
}

func (s *service) notifyAsync(ctx context.Context, userID string, draw domain.JackpotDraw) {
	if s.notifier == nil {
		return
	}
	select {
	case <-s.shutdown:
		return
	default:
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		notifyCtx := context.WithoutCancel(ctx)
		if err := s.notifier.NotifyJackpot(notifyCtx, userID, draw); err != nil {
			logger.FromContext(notifyCtx).Warn(LogMsgNotifyFailed, "user_id", userID, "error", err)
		}
	}()
}

// Config returns the active slot machine configuration
func (s *service) Config(ctx context.Context) (*domain.SlotMachineConfig, error) {
	machine, err := s.machines.SlotMachine(ctx)
	if err != nil {
		return nil, err
	}
	cfg := machine.Config()
	return &cfg, nil
}

// Shutdown waits for pending notifications
func (s *service) Shutdown(ctx context.Context) error {
	select {
	case <-s.shutdown:
	default:
		close(s.shutdown)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
