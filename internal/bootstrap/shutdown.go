package bootstrap

import (
	"context"
	"log/slog"
)

// GracefulShutdown stops the application in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and worker pool (no new background jobs)
// 3. Slots service (flush pending jackpot notifications)
// 4. Notifier and storage
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, app *App) {
	slog.Info(LogMsgShuttingDownServer)

	if app.Server != nil {
		if err := app.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}
	app.shutdownBackground(ctx)

	slog.Info(LogMsgServerStopped)
}

// shutdownBackground stops everything except the HTTP server
func (a *App) shutdownBackground(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
		slog.Debug(ComponentScheduler + " stopped")
	}
	if a.Workers != nil {
		a.Workers.Stop()
		slog.Debug(ComponentWorkers + " stopped")
	}
	if a.Slots != nil {
		shutdownComponent(ctx, ComponentSlots, a.Slots)
	}
	if a.Notifier != nil {
		if err := a.Notifier.Close(); err != nil {
			slog.Error(ComponentNotifier+LogMsgServiceShutdownFailed, "error", err)
		}
	}
	if a.Repos != nil && a.Repos.Pool != nil {
		a.Repos.Pool.Close()
		slog.Debug(ComponentStorage + " closed")
	}
}

type shutdownable interface {
	Shutdown(context.Context) error
}

func shutdownComponent(ctx context.Context, name string, c shutdownable) {
	if err := c.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
