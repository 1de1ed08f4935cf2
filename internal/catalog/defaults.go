package catalog

import (
	"context"
	"fmt"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// DefaultItems is the starter catalog seeded into empty storage. MYTHIC has
// no entry so mythic jackpot items stay pending until one is added.
var DefaultItems = []domain.Item{
	{ID: "wooden-sword", Name: "Wooden Sword", Category: domain.CategoryWeapon, Rarities: []domain.Rarity{domain.RarityCommon, domain.RarityRare}},
	{ID: "leather-vest", Name: "Leather Vest", Category: domain.CategoryArmor, Rarities: []domain.Rarity{domain.RarityCommon, domain.RarityRare, domain.RarityUltraRare}},
	{ID: "ember-fox", Name: "Ember Fox", Category: domain.CategoryPet, Rarities: []domain.Rarity{domain.RarityUltraRare, domain.RarityEpic}},
	{ID: "sun-amulet", Name: "Sun Amulet", Category: domain.CategoryAccessory, Rarities: []domain.Rarity{domain.RarityEpic, domain.RarityLegendary}},
}

// Seed inserts DefaultItems when the catalog is empty
func Seed(ctx context.Context, svc Service) error {
	items, err := svc.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(items) > 0 {
		return nil
	}
	for _, item := range DefaultItems {
		if err := svc.UpsertItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
