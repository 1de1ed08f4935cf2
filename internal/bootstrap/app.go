package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/RewardEngine_Go/internal/catalog"
	"github.com/osse101/RewardEngine_Go/internal/concurrency"
	"github.com/osse101/RewardEngine_Go/internal/config"
	"github.com/osse101/RewardEngine_Go/internal/daily"
	"github.com/osse101/RewardEngine_Go/internal/gameconfig"
	"github.com/osse101/RewardEngine_Go/internal/jackpot"
	"github.com/osse101/RewardEngine_Go/internal/ledger"
	"github.com/osse101/RewardEngine_Go/internal/notify"
	"github.com/osse101/RewardEngine_Go/internal/referral"
	"github.com/osse101/RewardEngine_Go/internal/reward"
	"github.com/osse101/RewardEngine_Go/internal/scheduler"
	"github.com/osse101/RewardEngine_Go/internal/server"
	"github.com/osse101/RewardEngine_Go/internal/slots"
	"github.com/osse101/RewardEngine_Go/internal/user"
	"github.com/osse101/RewardEngine_Go/internal/worker"
)

// App is the fully wired application
type App struct {
	Server    *server.Server
	Services  server.Services
	Slots     slots.Service
	Workers   *worker.Pool
	Scheduler *scheduler.Scheduler
	Notifier  *notify.Discord
	Repos     *Repositories
}

// NewApp wires services on top of repos. Background workers are started;
// the HTTP server is not.
func NewApp(ctx context.Context, cfg *config.Config, repos *Repositories) (*App, error) {
	locks := concurrency.NewLockManager()

	items := catalog.NewService(repos.Catalog, cfg.ItemCacheSize, cfg.ItemCacheTTL)
	if err := catalog.Seed(ctx, items); err != nil {
		return nil, err
	}

	configStore := gameconfig.NewStore(repos.GameConfig, gameconfig.NewValidator())
	if err := configStore.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load game configuration: %w", err)
	}

	jackpotSvc := jackpot.NewService(configStore)
	applier := reward.NewApplier(items)
	ledgerSvc := ledger.NewService(repos.Player, locks, applier, ledger.Options{
		Audit:   cfg.LedgerAudit,
		Settler: jackpotSvc,
	})

	app := &App{Repos: repos}

	var notifier slots.JackpotNotifier = notify.Noop{}
	if cfg.DiscordEnabled() {
		discord, err := notify.NewDiscord(cfg.DiscordToken, cfg.DiscordNotificationChannelID)
		if err != nil {
			return nil, err
		}
		app.Notifier = discord
		notifier = discord
		slog.Info(LogMsgNotifierEnabled, "channel_id", cfg.DiscordNotificationChannelID)
	} else {
		slog.Info(LogMsgNotifierDisabled)
	}

	app.Slots = slots.NewService(repos.Player, locks, configStore, jackpotSvc, applier, ledgerSvc, notifier)
	app.Services = server.Services{
		DB:       repos.Pool,
		Users:    user.NewService(repos.Player, locks),
		Slots:    app.Slots,
		Jackpot:  jackpotSvc,
		Ledger:   ledgerSvc,
		Referral: referral.NewService(repos.Player, repos.Referral, locks, ledgerSvc, referral.DefaultCalculator()),
		Daily:    daily.NewService(repos.Player, locks, ledgerSvc, daily.DefaultCalculator()),
		Config:   configStore,
	}

	app.Workers = worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize, worker.DefaultJobTimeout)
	app.Workers.Start()
	app.Scheduler = scheduler.New(app.Workers)
	if cfg.ConfigRefreshInterval > 0 {
		app.Scheduler.Schedule(ConfigRefreshJobName, cfg.ConfigRefreshInterval, gameconfig.RefreshJob{Store: configStore})
	}

	app.Server = server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Limits:         server.DefaultActivityLimits(),
	}, app.Services)

	return app, nil
}
