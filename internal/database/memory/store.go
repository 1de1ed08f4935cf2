// Package memory is an in-process implementation of the repository
// interfaces, used for local development and tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/repository"
)

var (
	_ repository.Player     = (*Store)(nil)
	_ repository.Catalog    = (*Store)(nil)
	_ repository.GameConfig = (*Store)(nil)
	_ repository.Referral   = (*Store)(nil)
)

type state struct {
	resources map[string]domain.UserResources
	entries   map[string][]domain.LedgerEntry
	items     map[string][]domain.OwnedItem
	streaks   map[string]domain.DailyStreak
	referrals map[string]domain.Referral
	audits    map[string][]domain.ClaimAudit
	slots     map[string]domain.SlotMachineConfig
	jackpots  map[string]domain.JackpotConfig
}

func newState() *state {
	return &state{
		resources: map[string]domain.UserResources{},
		entries:   map[string][]domain.LedgerEntry{},
		items:     map[string][]domain.OwnedItem{},
		streaks:   map[string]domain.DailyStreak{},
		referrals: map[string]domain.Referral{},
		audits:    map[string][]domain.ClaimAudit{},
		slots:     map[string]domain.SlotMachineConfig{},
		jackpots:  map[string]domain.JackpotConfig{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.resources {
		c.resources[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = cloneEntries(v)
	}
	for k, v := range s.items {
		c.items[k] = slices.Clone(v)
	}
	for k, v := range s.streaks {
		c.streaks[k] = v
	}
	for k, v := range s.referrals {
		c.referrals[k] = cloneReferral(v)
	}
	for k, v := range s.audits {
		c.audits[k] = slices.Clone(v)
	}
	for k, v := range s.slots {
		c.slots[k] = cloneSlotMachine(v)
	}
	for k, v := range s.jackpots {
		c.jackpots[k] = cloneJackpot(v)
	}
	return c
}

// Store keeps all state behind one mutex. A transaction holds the mutex from
// BeginTx until Commit or Rollback and works on a private copy, so callers
// holding a transaction must not call the Store's non-transactional methods.
// The item catalog has its own lock and may be read during a transaction.
type Store struct {
	mu sync.Mutex
	st *state

	catalogMu sync.RWMutex
	catalog   map[string]domain.Item
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		st:      newState(),
		catalog: map[string]domain.Item{},
	}
}

// Ping always succeeds; it lets the store stand in for a database pool in
// readiness checks
func (s *Store) Ping(context.Context) error {
	return nil
}

// Close is a no-op
func (s *Store) Close() {}

func (s *Store) GetResources(_ context.Context, userID string) (*domain.UserResources, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.st.resources[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &res, nil
}

func (s *Store) ListEntries(_ context.Context, userID string) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.st.entries[userID]), nil
}

func (s *Store) ListOwnedItems(_ context.Context, userID string) ([]domain.OwnedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := slices.Clone(s.st.items[userID])
	if items == nil {
		items = []domain.OwnedItem{}
	}
	return items, nil
}

func (s *Store) ListClaimAudits(_ context.Context, userID string, limit int) ([]domain.ClaimAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	audits := s.st.audits[userID]
	out := make([]domain.ClaimAudit, 0, min(limit, len(audits)))
	for i := len(audits) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, audits[i])
	}
	return out, nil
}

// Catalog

func (s *Store) ListItemsByRarity(_ context.Context, rarity domain.Rarity) ([]domain.Item, error) {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()

	items := []domain.Item{}
	for _, item := range s.sortedCatalog() {
		if item.Supports(rarity) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) ListItems(_ context.Context) ([]domain.Item, error) {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	return s.sortedCatalog(), nil
}

func (s *Store) UpsertItem(_ context.Context, item domain.Item) error {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()
	item.Rarities = slices.Clone(item.Rarities)
	s.catalog[item.ID] = item
	return nil
}

func (s *Store) sortedCatalog() []domain.Item {
	items := make([]domain.Item, 0, len(s.catalog))
	for _, item := range s.catalog {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// Game configuration

func (s *Store) GetSlotMachine(_ context.Context, name string) (*domain.SlotMachineConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.st.slots[name]
	if !ok {
		return nil, domain.ErrGameConfigurationNotFound
	}
	cfg = cloneSlotMachine(cfg)
	return &cfg, nil
}

func (s *Store) SaveSlotMachine(_ context.Context, cfg domain.SlotMachineConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.slots[cfg.Name] = cloneSlotMachine(cfg)
	return nil
}

func (s *Store) GetJackpot(_ context.Context, name string) (*domain.JackpotConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.st.jackpots[name]
	if !ok {
		return nil, domain.ErrGameConfigurationNotFound
	}
	cfg = cloneJackpot(cfg)
	return &cfg, nil
}

func (s *Store) SaveJackpot(_ context.Context, cfg domain.JackpotConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.jackpots[cfg.Name] = cloneJackpot(cfg)
	return nil
}

// Referrals

func (s *Store) CreateReferral(_ context.Context, ref domain.Referral) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.st.referrals[ref.ReferredID]; exists {
		return domain.ErrReferralExists
	}
	s.st.referrals[ref.ReferredID] = cloneReferral(ref)
	return nil
}

func (s *Store) GetReferral(_ context.Context, referredID string) (*domain.Referral, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.st.referrals[referredID]
	if !ok {
		return nil, domain.ErrReferralNotFound
	}
	ref = cloneReferral(ref)
	return &ref, nil
}

func cloneEntries(entries []domain.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(entries))
	for i, e := range entries {
		e.Reward = e.Reward.Clone()
		out[i] = e
	}
	return out
}

func cloneReferral(r domain.Referral) domain.Referral {
	if r.OnboardedAt != nil {
		at := *r.OnboardedAt
		r.OnboardedAt = &at
	}
	return r
}

func cloneSlotMachine(cfg domain.SlotMachineConfig) domain.SlotMachineConfig {
	reels := make([]domain.Reel, len(cfg.Reels))
	for i, r := range cfg.Reels {
		reels[i] = domain.Reel{Symbols: slices.Clone(r.Symbols)}
	}
	combos := make([]domain.Combination, len(cfg.Combinations))
	for i, c := range cfg.Combinations {
		combos[i] = domain.Combination{Symbols: slices.Clone(c.Symbols), Reward: c.Reward.Clone()}
	}
	cfg.Reels = reels
	cfg.Combinations = combos
	return cfg
}

func cloneJackpot(cfg domain.JackpotConfig) domain.JackpotConfig {
	entries := make([]domain.JackpotEntry, len(cfg.Entries))
	for i, e := range cfg.Entries {
		e.Reward = e.Reward.Clone()
		entries[i] = e
	}
	cfg.Entries = entries
	return cfg
}
