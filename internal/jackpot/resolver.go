package jackpot

import (
	"fmt"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/utils"
)

// Table is a validated jackpot configuration ready for drawing
type Table struct {
	config  domain.JackpotConfig
	entries *utils.WeightedTable[domain.JackpotEntry]
}

// Compile validates cfg and builds its weighted entry table
func Compile(cfg domain.JackpotConfig) (*Table, error) {
	if cfg.Pool < 0 {
		return nil, fmt.Errorf("%w: jackpot %q has negative pool", domain.ErrInvalidConfiguration, cfg.Name)
	}

	candidates := make([]utils.Weighted[domain.JackpotEntry], 0, len(cfg.Entries))
	for i, e := range cfg.Entries {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("%w: jackpot %q entry %d: %v", domain.ErrInvalidConfiguration, cfg.Name, i, err)
		}
		candidates = append(candidates, utils.Weighted[domain.JackpotEntry]{Item: e, Weight: e.Weight})
	}

	entries, err := utils.NewWeightedTable(candidates)
	if err != nil {
		return nil, fmt.Errorf("jackpot %q: %w", cfg.Name, err)
	}
	return &Table{config: cfg, entries: entries}, nil
}

func validateEntry(e domain.JackpotEntry) error {
	r := e.Reward
	switch {
	case !r.Kind.Valid():
		return fmt.Errorf("unknown reward kind %q", r.Kind)
	case r.Kind == domain.RewardJackpot || r.Kind == domain.RewardSpin:
		return fmt.Errorf("%s cannot be a jackpot outcome", r.Kind)
	case r.Kind == domain.RewardPoolPercentage && (r.Amount <= 0 || r.Amount > 100):
		return fmt.Errorf("pool percentage %v outside (0, 100]", r.Amount)
	case r.Kind == domain.RewardItem && (r.Item == nil || r.Item.Rarity == ""):
		return fmt.Errorf("item outcome without rarity")
	case r.Amount < 0:
		return fmt.Errorf("negative amount %v", r.Amount)
	}
	return nil
}

// Config returns the configuration the table was compiled from
func (t *Table) Config() domain.JackpotConfig {
	return t.config
}

// Draw picks one outcome. Pool percentage outcomes carry the current pool
// snapshot; the pool itself is only debited when the reward is settled.
func (t *Table) Draw(rnd func() float64) domain.JackpotDraw {
	entry := t.entries.Pick(rnd)
	draw := domain.JackpotDraw{
		Description: entry.Description,
		Reward:      entry.Reward.Clone(),
		Pool:        t.config.Pool,
	}
	if draw.Reward.Kind == domain.RewardPoolPercentage {
		draw.Reward.Pool = t.config.Pool
	}
	if draw.Reward.Description == "" {
		draw.Reward.Description = entry.Description
	}
	return draw
}

// Resolve compiles cfg and performs a single draw
func Resolve(cfg domain.JackpotConfig, rnd func() float64) (domain.JackpotDraw, error) {
	t, err := Compile(cfg)
	if err != nil {
		return domain.JackpotDraw{}, err
	}
	return t.Draw(rnd), nil
}
