package gameconfig

import (
	"context"

	"github.com/osse101/RewardEngine_Go/internal/logger"
)

// RefreshJob reloads the configuration snapshots when run by the worker pool
type RefreshJob struct {
	Store *Store
}

// Process implements worker.Job
func (j RefreshJob) Process(ctx context.Context) error {
	if err := j.Store.Refresh(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "error", err)
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgRefreshComplete)
	return nil
}
