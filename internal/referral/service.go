package referral

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

// Service defines referral operations
type Service interface {
	CreateReferral(ctx context.Context, referrerID, referredID string) (*domain.Referral, error)
	// Onboard rewards the referrer of referredID. It pays out at most once
	// per referred user; later calls return no entries. The count given to
	// the calculator is the referrer's onboarded referrals, this one
	// included. Referrals that were created but never onboarded do not count.
	Onboard(ctx context.Context, referredID string) ([]domain.LedgerEntry, error)
	RewardsForCount(n int) []domain.RewardSpec
}

type service struct {
	players   repository.Player
	referrals repository.Referral
	locks     *concurrency.LockManager
	ledger    LedgerAppender
	calc      *Calculator
	now       func() time.Time
}

// NewService creates a referral service
func NewService(players repository.Player, referrals repository.Referral, locks *concurrency.LockManager, ledger LedgerAppender, calc *Calculator) Service {
	return &service{
		players:   players,
		referrals: referrals,
		locks:     locks,
		ledger:    ledger,
		calc:      calc,
		now:       time.Now,
	}
}

func (s *service) CreateReferral(ctx context.Context, referrerID, referredID string) (*domain.Referral, error) {
	if referrerID == "" || referredID == "" {
		return nil, fmt.Errorf("%w: referrer and referred user are required", domain.ErrInvalidInput)
	}
	if referrerID == referredID {
		return nil, domain.ErrSelfReferral
	}
	for _, id := range []string{referrerID, referredID} {
		if _, err := s.players.GetResources(ctx, id); err != nil {
			return nil, err
		}
	}

	ref := domain.Referral{
		ReferrerID: referrerID,
		ReferredID: referredID,
		CreatedAt:  s.now(),
	}
	if err := s.referrals.CreateReferral(ctx, ref); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgReferralCreated, "referrer_id", referrerID, "referred_id", referredID)
	return &ref, nil
}

func (s *service) Onboard(ctx context.Context, referredID string) ([]domain.LedgerEntry, error) {
	log := logger.FromContext(ctx)

	ref, err := s.referrals.GetReferral(ctx, referredID)
	if err != nil {
		return nil, err
	}

	// counting and appending happen under the referrer's lock so two
	// onboardings never observe the same count
	unlock := s.locks.Lock(ref.ReferrerID)
	defer unlock()

	tx, err := s.players.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	marked, changed, err := tx.MarkReferralOnboarded(ctx, referredID, s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		log.Info(LogMsgAlreadyOnboarded, "referred_id", referredID)
		return []domain.LedgerEntry{}, nil
	}

	if _, err := tx.GetResourcesForUpdate(ctx, marked.ReferrerID); err != nil {
		return nil, err
	}
	count, err := tx.CountOnboardedReferrals(ctx, marked.ReferrerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}

	entries := []domain.LedgerEntry{}
	for _, spec := range s.calc.RewardsForCount(count) {
		entry, err := s.ledger.AppendTx(ctx, tx, marked.ReferrerID, spec, domain.ReasonReferral, count)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	metrics.ReferralsOnboarded.Inc()
	log.Info(LogMsgReferralOnboarded,
		"referrer_id", marked.ReferrerID, "referred_id", referredID, "count", count, "rewards", len(entries))
	return entries, nil
}

func (s *service) RewardsForCount(n int) []domain.RewardSpec {
	return s.calc.RewardsForCount(n)
}
