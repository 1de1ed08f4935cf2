package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// ItemCategory groups catalog items
type ItemCategory string

const (
	CategoryWeapon    ItemCategory = "WEAPON"
	CategoryArmor     ItemCategory = "ARMOR"
	CategoryPet       ItemCategory = "PET"
	CategoryAccessory ItemCategory = "ACCESSORY"
)

// Item is a catalog entry that can be materialised at several rarities
type Item struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category ItemCategory `json:"category"`
	Rarities []Rarity     `json:"rarities"`
}

// Supports reports whether the item can be granted at rarity r
func (i Item) Supports(r Rarity) bool {
	return slices.Contains(i.Rarities, r)
}

// OwnedItem is an item instance held by a player
type OwnedItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Rarity    Rarity    `json:"rarity"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}
