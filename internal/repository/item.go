package repository

import (
	"context"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// Catalog defines the interface for the item catalog
type Catalog interface {
	ListItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpsertItem(ctx context.Context, item domain.Item) error
}
