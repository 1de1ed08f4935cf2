package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/osse101/RewardEngine_Go/internal/concurrency"
	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/metrics"
	"github.com/osse101/RewardEngine_Go/internal/repository"
	"github.com/osse101/RewardEngine_Go/internal/reward"
)

// RewardApplier applies a reward to a player's resources
type RewardApplier interface {
	Apply(ctx context.Context, w reward.ItemWriter, res *domain.UserResources, spec domain.RewardSpec, bet int) (reward.Result, error)
}

// PoolSettler pays out POOL_PERCENTAGE rewards from the jackpot pool
type PoolSettler interface {
	Settle(ctx context.Context, tx repository.PlayerTx, res *domain.UserResources, spec domain.RewardSpec) (*domain.PoolSettlement, error)
	PoolChanged(ctx context.Context)
}

// Service manages each player's pending rewards
type Service interface {
	// Append adds a reward, merging sumable rewards into the open entry of
	// the same reason and kind
	Append(ctx context.Context, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error)
	// AppendTx is Append inside a caller-owned transaction. The caller must
	// hold the player's lock.
	AppendTx(ctx context.Context, tx repository.PlayerTx, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error)
	ListUnclaimed(ctx context.Context, userID string) ([]domain.LedgerEntry, error)
	ListUnclaimedByReason(ctx context.Context, userID string, reason domain.RewardReason) ([]domain.LedgerEntry, error)
	ClaimOne(ctx context.Context, userID string, entryID uuid.UUID) (*domain.ClaimResult, error)
	// ClaimMany claims every listed entry it can; unknown, repeated, claimed
	// and deferred entries are reported as skipped
	ClaimMany(ctx context.Context, userID string, entryIDs []uuid.UUID) (*domain.ClaimResult, error)
	History(ctx context.Context, userID string, limit int) ([]domain.ClaimAudit, error)
}

// Options configures optional ledger behaviour
type Options struct {
	// Audit records every claim in the claim audit log
	Audit bool
	// Settler settles pool percentage rewards at claim time. Without it
	// those entries stay pending.
	Settler PoolSettler
}

type service struct {
	repo    repository.Player
	locks   *concurrency.LockManager
	applier RewardApplier
	opts    Options
	now     func() time.Time
}

// NewService creates a ledger service
func NewService(repo repository.Player, locks *concurrency.LockManager, applier RewardApplier, opts Options) Service {
	return &service{
		repo:    repo,
		locks:   locks,
		applier: applier,
		opts:    opts,
		now:     time.Now,
	}
}

func validateAppend(userID string, spec domain.RewardSpec, reason domain.RewardReason) error {
	switch {
	case userID == "":
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	case reason == "":
		return fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	case !spec.Kind.Valid():
		return fmt.Errorf("%w: unknown reward kind %q", domain.ErrInvalidInput, spec.Kind)
	case spec.Amount < 0:
		return fmt.Errorf("%w: reward amount cannot be negative", domain.ErrInvalidInput)
	case spec.Kind == domain.RewardItem && (spec.Item == nil || spec.Item.Rarity == ""):
		return fmt.Errorf("%w: item reward needs a rarity", domain.ErrInvalidInput)
	}
	return nil
}

func (s *service) Append(ctx context.Context, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error) {
	if err := validateAppend(userID, spec, reason); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// the user must exist before rewards can be queued for them
	if _, err := tx.GetResourcesForUpdate(ctx, userID); err != nil {
		return nil, err
	}

	entry, err := s.AppendTx(ctx, tx, userID, spec, reason, reasonContext)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry, nil
}

func (s *service) AppendTx(ctx context.Context, tx repository.PlayerTx, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error) {
	if err := validateAppend(userID, spec, reason); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	now := s.now()

	if spec.Sumable {
		entries, err := tx.ListEntriesForUpdate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list ledger entries: %w", err)
		}
		for _, e := range entries {
			if !e.MergeTarget(spec, reason) {
				continue
			}
			e.Reward.Amount += spec.Amount
			e.Context = reasonContext
			e.UpdatedAt = now
			if err := tx.UpdateEntry(ctx, e); err != nil {
				return nil, fmt.Errorf("failed to merge ledger entry: %w", err)
			}
			metrics.LedgerAppends.WithLabelValues(string(reason), metrics.ModeMerged).Inc()
			log.Debug(LogMsgEntryMerged, "user_id", userID, "entry_id", e.ID, "kind", spec.Kind, "amount", e.Reward.Amount)
			return &e, nil
		}
	}

	entry := domain.LedgerEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Reward:    spec.Clone(),
		Reason:    reason,
		Context:   reasonContext,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.InsertEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	metrics.LedgerAppends.WithLabelValues(string(reason), metrics.ModeInserted).Inc()
	log.Debug(LogMsgEntryAppended, "user_id", userID, "entry_id", entry.ID, "kind", spec.Kind, "reason", reason)
	return &entry, nil
}

func (s *service) ListUnclaimed(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	unclaimed := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Claimed {
			unclaimed = append(unclaimed, e)
		}
	}
	return unclaimed, nil
}

func (s *service) ListUnclaimedByReason(ctx context.Context, userID string, reason domain.RewardReason) ([]domain.LedgerEntry, error) {
	entries, err := s.ListUnclaimed(ctx, userID)
	if err != nil {
		return nil, err
	}
	filtered := entries[:0]
	for _, e := range entries {
		if e.Reason == reason {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *service) ClaimOne(ctx context.Context, userID string, entryID uuid.UUID) (*domain.ClaimResult, error) {
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
	entries, err := tx.ListEntriesForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	entry, ok := findEntry(entries, entryID)
	if !ok {
		metrics.LedgerClaims.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
	}
	if entry.Claimed {
		metrics.LedgerClaims.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyClaimed, entryID)
	}

	result := &domain.ClaimResult{Claimed: []domain.LedgerEntry{}}
	settled, err := s.claimEntry(ctx, tx, res, entry, result)
	if err != nil {
		metrics.LedgerClaims.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	if err := s.finish(ctx, tx, res, result, settled); err != nil {
		return nil, err
	}
	metrics.LedgerClaims.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return result, nil
}

func (s *service) ClaimMany(ctx context.Context, userID string, entryIDs []uuid.UUID) (*domain.ClaimResult, error) {
	if len(entryIDs) == 0 {
		return nil, fmt.Errorf("%w: no entry ids given", domain.ErrInvalidInput)
	}
	log := logger.FromContext(ctx)

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
	entries, err := tx.ListEntriesForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	result := &domain.ClaimResult{Claimed: []domain.LedgerEntry{}}
	skip := func(id uuid.UUID, reason string) {
		result.Skipped = append(result.Skipped, domain.ClaimSkip{EntryID: id, Reason: reason})
		metrics.LedgerClaims.WithLabelValues(metrics.OutcomeSkipped).Inc()
		log.Debug(LogMsgClaimSkipped, "user_id", userID, "entry_id", id, "reason", reason)
	}

	seen := make(map[uuid.UUID]bool, len(entryIDs))
	settledAny := false
	for _, id := range entryIDs {
		if seen[id] {
			skip(id, SkipReasonDuplicate)
			continue
		}
		seen[id] = true

		entry, ok := findEntry(entries, id)
		switch {
		case !ok:
			skip(id, SkipReasonNotFound)
			continue
		case entry.Claimed:
			skip(id, SkipReasonAlreadyClaimed)
			continue
		}

		settled, err := s.claimEntry(ctx, tx, res, entry, result)
		if err != nil {
			if isDeferral(err) {
				skip(id, SkipReasonDeferred)
				continue
			}
			metrics.LedgerClaims.WithLabelValues(metrics.OutcomeFailed).Inc()
			return nil, err
		}
		settledAny = settledAny || settled
		metrics.LedgerClaims.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}

	if err := s.finish(ctx, tx, res, result, settledAny); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.ClaimAudit, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.ListClaimAudits(ctx, userID, limit)
}

// claimEntry pays out one entry. Resources are only changed when the whole
// payout succeeds. It reports whether the jackpot pool was debited.
func (s *service) claimEntry(ctx context.Context, tx repository.PlayerTx, res *domain.UserResources, entry domain.LedgerEntry, result *domain.ClaimResult) (bool, error) {
	work := *res
	settled := false

	if entry.Reward.Kind == domain.RewardPoolPercentage {
		if s.opts.Settler == nil {
			return false, fmt.Errorf("%w: entry %s", domain.ErrPoolSettlementRequired, entry.ID)
		}
		if _, err := s.opts.Settler.Settle(ctx, tx, &work, entry.Reward); err != nil {
			return false, err
		}
		settled = true
	} else {
		applied, err := s.applier.Apply(ctx, tx, &work, entry.Reward, 1)
		if err != nil {
			return false, err
		}
		if applied.Deferred {
			return false, applied.DeferReason
		}
		if applied.Item != nil {
			result.Items = append(result.Items, *applied.Item)
		}
	}

	// Claimed entries always leave storage. KeepAfterClaimed does not retain them.
	now := s.now()
	entry.Claimed = true
	entry.UpdatedAt = now
	if err := tx.DeleteEntry(ctx, entry.UserID, entry.ID); err != nil {
		return false, fmt.Errorf("failed to remove claimed entry: %w", err)
	}

	if s.opts.Audit {
		audit := domain.ClaimAudit{
			EntryID:   entry.ID,
			UserID:    entry.UserID,
			Reward:    entry.Reward,
			Reason:    entry.Reason,
			Context:   entry.Context,
			ClaimedAt: now,
		}
		if err := tx.InsertClaimAudit(ctx, audit); err != nil {
			return false, fmt.Errorf("failed to record claim audit: %w", err)
		}
	}

	*res = work
	result.Claimed = append(result.Claimed, entry)
	logger.FromContext(ctx).Info(LogMsgEntryClaimed, "user_id", entry.UserID, "entry_id", entry.ID, "kind", entry.Reward.Kind, "amount", entry.Reward.Amount)
	return settled, nil
}

func (s *service) finish(ctx context.Context, tx repository.PlayerTx, res *domain.UserResources, result *domain.ClaimResult, settled bool) error {
	res.UpdatedAt = s.now()
	if err := tx.UpdateResources(ctx, *res); err != nil {
		return fmt.Errorf("failed to update resources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	result.Resources = *res
	if settled {
		s.opts.Settler.PoolChanged(ctx)
	}
	return nil
}

func findEntry(entries []domain.LedgerEntry, id uuid.UUID) (domain.LedgerEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.LedgerEntry{}, false
}

func isDeferral(err error) bool {
	return errors.Is(err, domain.ErrDeferredResolutionFailed) ||
		errors.Is(err, domain.ErrPoolSettlementRequired) ||
		errors.Is(err, domain.ErrJackpotPoolInsufficient)
}
