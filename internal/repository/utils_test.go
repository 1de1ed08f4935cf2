package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

type fakeTx struct {
	err    error
	ctxErr error
	rolled bool
}

func (f *fakeTx) Commit(context.Context) error { return nil }

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolled = true
	f.ctxErr = ctx.Err()
	return f.err
}

func TestSafeRollback(t *testing.T) {
	for _, err := range []error{nil, domain.ErrTxClosed, errors.New("conn busy")} {
		tx := &fakeTx{err: err}
		assert.NotPanics(t, func() { SafeRollback(context.Background(), tx) })
		assert.True(t, tx.rolled)
	}
}

func TestSafeRollback_IgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tx := &fakeTx{}
	SafeRollback(ctx, tx)

	assert.True(t, tx.rolled)
	assert.NoError(t, tx.ctxErr)
}
