package domain

import "time"

// Slot machine shape
const (
	ReelCount      = 4
	SymbolsPerReel = 5
)

// SlotSymbol is one weighted face of a reel
type SlotSymbol struct {
	Symbol string  `json:"symbol" validate:"required"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

// Reel is an ordered, weighted symbol table
type Reel struct {
	Symbols []SlotSymbol `json:"symbols" validate:"len=5,dive"`
}

// Combination pays Reward when its symbol multiset is present in a draw
type Combination struct {
	Symbols []string   `json:"symbols" validate:"min=1,dive,required"`
	Reward  RewardSpec `json:"reward"`
}

// SlotMachineConfig is the full reel and paytable configuration
type SlotMachineConfig struct {
	Name         string        `json:"name" validate:"required"`
	Reels        []Reel        `json:"reels" validate:"len=4,dive"`
	Combinations []Combination `json:"combinations" validate:"dive"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TurnType distinguishes reel turns from jackpot draws in a play script
type TurnType string

const (
	TurnSlotMachine TurnType = "slot_machine"
	TurnJackpot     TurnType = "jackpot"
)

// PlayTurn is a single recorded step of a play session
type PlayTurn struct {
	No            int          `json:"no"`
	Type          TurnType     `json:"type"`
	Symbols       []string     `json:"symbols,omitempty"`
	Rewards       []RewardSpec `json:"rewards"`
	BetMultiplier int          `json:"bet_multiplier"`
	Jackpot       *JackpotDraw `json:"jackpot,omitempty"`
}

// PlayResult is returned to the player after a session completes
type PlayResult struct {
	Script     []PlayTurn    `json:"script"`
	Resources  UserResources `json:"resources"`
	Pending    []LedgerEntry `json:"pending,omitempty"`
	Items      []OwnedItem   `json:"items,omitempty"`
	BonusTurns int           `json:"bonus_turns"`
	RolledBack int           `json:"rolled_back"`
}
