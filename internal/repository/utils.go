package repository

import (
	"context"
	"errors"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
)

// SafeRollback rolls back tx unless it was already committed. It is meant to
// be deferred right after BeginTx. The rollback ignores cancellation of ctx
// so an aborted request still releases its row locks.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, domain.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
