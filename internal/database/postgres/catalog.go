package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.Query(ctx, `SELECT item_id, name, category, rarities FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return collectItems(rows)
}

func (s *Store) ListItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT item_id, name, category, rarities
		FROM items
		WHERE $1 = ANY(rarities)
		ORDER BY item_id`, string(rarity))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return collectItems(rows)
}

func (s *Store) UpsertItem(ctx context.Context, item domain.Item) error {
	rarities := make([]string, len(item.Rarities))
	for i, r := range item.Rarities {
		rarities[i] = string(r)
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO items (item_id, name, category, rarities)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO UPDATE
		SET name = EXCLUDED.name, category = EXCLUDED.category, rarities = EXCLUDED.rarities`,
		item.ID, item.Name, string(item.Category), rarities)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveItem, err)
	}
	return nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		var category string
		var rarities []string
		if err := rows.Scan(&item.ID, &item.Name, &category, &rarities); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		item.Category = domain.ItemCategory(category)
		item.Rarities = make([]domain.Rarity, len(rarities))
		for i, r := range rarities {
			item.Rarities[i] = domain.Rarity(r)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, nil
}
