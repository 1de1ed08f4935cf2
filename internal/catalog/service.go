package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/repository"
	"github.com/osse101/RewardEngine_Go/internal/utils"
)

// Service resolves item rewards against the item catalog
type Service interface {
	// RandomItem returns a random catalog item supporting rarity, or nil when none does
	RandomItem(ctx context.Context, rarity domain.Rarity, rnd func() float64) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpsertItem(ctx context.Context, item domain.Item) error
	Invalidate()
}

type service struct {
	repo  repository.Catalog
	cache *rarityCache
}

// NewService creates a catalog service with a rarity cache of the given size and TTL
func NewService(repo repository.Catalog, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newRarityCache(cacheSize, cacheTTL),
	}
}

func (s *service) RandomItem(ctx context.Context, rarity domain.Rarity, rnd func() float64) (*domain.Item, error) {
	items, ok := s.cache.Get(rarity)
	if !ok {
		var err error
		items, err = s.repo.ListItemsByRarity(ctx, rarity)
		if err != nil {
			return nil, fmt.Errorf("failed to list items for rarity %s: %w", rarity, err)
		}
		s.cache.Set(rarity, items)
		logger.FromContext(ctx).Debug(LogMsgCatalogCacheMiss, "rarity", rarity, "items", len(items))
	}

	if len(items) == 0 {
		return nil, nil
	}
	item := items[utils.RandomIndex(len(items), rnd)]
	return &item, nil
}

func (s *service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *service) UpsertItem(ctx context.Context, item domain.Item) error {
	if item.ID == "" || item.Name == "" || len(item.Rarities) == 0 {
		return fmt.Errorf("%w: item needs an id, a name and at least one rarity", domain.ErrInvalidInput)
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
	}
	s.Invalidate()
	return nil
}

func (s *service) Invalidate() {
	s.cache.Clear()
}
