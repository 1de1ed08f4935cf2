package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/RewardEngine_Go/internal/config"
	"github.com/osse101/RewardEngine_Go/internal/database"
	"github.com/osse101/RewardEngine_Go/internal/database/memory"
	"github.com/osse101/RewardEngine_Go/internal/database/postgres"
	"github.com/osse101/RewardEngine_Go/internal/repository"
)

// Repositories holds the repository implementations of the selected backend
type Repositories struct {
	Player     repository.Player
	Catalog    repository.Catalog
	GameConfig repository.GameConfig
	Referral   repository.Referral
	// Pool is pinged by the readiness probe and closed on shutdown
	Pool database.Pool
}

// OpenStorage connects the backend named by cfg.Storage. The postgres
// backend is migrated before it is returned.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	slog.Info(LogMsgStorageSelected, "storage", cfg.Storage)

	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore()
		return &Repositories{
			Player:     store,
			Catalog:    store,
			GameConfig: store,
			Referral:   store,
			Pool:       store,
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: DBMaxConnIdleTime,
		MaxConnLifetime: DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	store := postgres.NewStore(pool)
	return &Repositories{
		Player:     store,
		Catalog:    store,
		GameConfig: store,
		Referral:   store,
		Pool:       pool,
	}, nil
}
