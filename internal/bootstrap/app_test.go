package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RewardEngine_Go/internal/config"
	"github.com/osse101/RewardEngine_Go/internal/server"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Port:                  0,
		APIKey:                "test-key",
		Environment:           "test",
		Storage:               config.StorageMemory,
		WorkerCount:           2,
		WorkerQueueSize:       4,
		ConfigRefreshInterval: 10 * time.Millisecond,
		ItemCacheSize:         8,
		ItemCacheTTL:          time.Minute,
	}
}

func TestOpenStorage_Memory(t *testing.T) {
	repos, err := OpenStorage(context.Background(), memoryConfig())
	require.NoError(t, err)

	assert.NotNil(t, repos.Player)
	assert.NotNil(t, repos.Catalog)
	assert.NotNil(t, repos.GameConfig)
	assert.NotNil(t, repos.Referral)
	assert.NoError(t, repos.Pool.Ping(context.Background()))
}

func TestNewApp_WiresRoutesAndStopsCleanly(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()

	repos, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	app, err := NewApp(ctx, cfg, repos)
	require.NoError(t, err)
	assert.Nil(t, app.Notifier, "discord is not configured")

	router := server.NewRouter(server.Options{APIKey: cfg.APIKey, Limits: server.DefaultActivityLimits()}, app.Services)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/config", nil)
	req.Header.Set(server.HeaderAPIKey, cfg.APIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// let the refresh job run a few times
	time.Sleep(50 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	app.shutdownBackground(shutdownCtx)
	assert.False(t, app.Workers.TryEnqueue(nil), "pool accepts no jobs after shutdown")
}

