package domain

// RewardKind identifies what a reward grants
type RewardKind string

const (
	RewardGold           RewardKind = "GOLD"
	RewardToken          RewardKind = "TOKEN"
	RewardFood           RewardKind = "FOOD"
	RewardEnergy         RewardKind = "ENERGY"
	RewardItem           RewardKind = "ITEM"
	RewardNFT            RewardKind = "NFT"
	RewardJackpot        RewardKind = "JACKPOT"
	RewardSpin           RewardKind = "SPIN"
	RewardPoolPercentage RewardKind = "POOL_PERCENTAGE"
)

// RewardKinds lists every known kind in display order
var RewardKinds = []RewardKind{
	RewardGold, RewardToken, RewardFood, RewardEnergy, RewardItem,
	RewardNFT, RewardJackpot, RewardSpin, RewardPoolPercentage,
}

// Valid reports whether k is a known reward kind
func (k RewardKind) Valid() bool {
	for _, known := range RewardKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsCounter reports whether the kind credits a numeric player resource
func (k RewardKind) IsCounter() bool {
	switch k {
	case RewardGold, RewardToken, RewardFood, RewardEnergy:
		return true
	}
	return false
}

// Rarity is the tier of an item reward
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityUltraRare Rarity = "ULTRA_RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
	RarityMythic    Rarity = "MYTHIC"
)

// ItemDescriptor describes the item granted by an ITEM reward
type ItemDescriptor struct {
	Rarity Rarity `json:"rarity" validate:"required,oneof=COMMON RARE ULTRA_RARE EPIC LEGENDARY MYTHIC"`
	Level  int    `json:"level,omitempty" validate:"gte=0"`
	ItemID string `json:"item_id,omitempty"`
}

// RewardSpec is a single grantable reward. It is a value type: use Clone or
// Scaled before mutating a copy taken from shared configuration.
type RewardSpec struct {
	Kind             RewardKind      `json:"type" validate:"required,oneof=GOLD TOKEN FOOD ENERGY ITEM NFT JACKPOT SPIN POOL_PERCENTAGE"`
	Amount           float64         `json:"value" validate:"gte=0"`
	Item             *ItemDescriptor `json:"item,omitempty"`
	Sumable          bool            `json:"sumable"`
	// KeepAfterClaimed marks one-off rewards for clients. Claimed entries are deleted regardless.
	KeepAfterClaimed bool            `json:"keep_after_claimed"`
	Description      string          `json:"description,omitempty"`
	// Pool is the jackpot pool snapshot at draw time for POOL_PERCENTAGE rewards
	Pool float64 `json:"pool,omitempty"`
}

// Clone returns a deep copy of the spec
func (r RewardSpec) Clone() RewardSpec {
	if r.Item != nil {
		item := *r.Item
		r.Item = &item
	}
	return r
}

// Scaled returns a copy with the amount multiplied by multiplier
func (r RewardSpec) Scaled(multiplier int) RewardSpec {
	c := r.Clone()
	c.Amount *= float64(multiplier)
	return c
}
