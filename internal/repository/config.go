package repository

import (
	"context"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// GameConfig stores slot machine and jackpot configuration.
// Getters return ErrGameConfigurationNotFound for unknown names.
type GameConfig interface {
	GetSlotMachine(ctx context.Context, name string) (*domain.SlotMachineConfig, error)
	SaveSlotMachine(ctx context.Context, cfg domain.SlotMachineConfig) error
	GetJackpot(ctx context.Context, name string) (*domain.JackpotConfig, error)
	SaveJackpot(ctx context.Context, cfg domain.JackpotConfig) error
}
