package fetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := NewPool(2, zap.NewNop())

	var ran int64
	task := func(context.Context) error {
		atomic.AddInt64(&ran, 1)
		return nil
	}

	err := pool.Run(context.Background(), task, task, task)
	require.NoError(t, err)
	assert.Equal(t, int64(3), atomic.LoadInt64(&ran))
}

func TestPoolAwaitsAllBeforeReturningError(t *testing.T) {
	pool := NewPool(2, zap.NewNop())

	var slowDone int64
	fail := func(context.Context) error { return errors.New("boom") }
	slow := func(context.Context) error {
		time.Sleep(20 * time.Millisecond)
		atomic.StoreInt64(&slowDone, 1)
		return nil
	}

	err := pool.Run(context.Background(), fail, slow)
	require.Error(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&slowDone), "pool must join both tasks before surfacing the error")
}

func TestPoolReturnsLowestIndexedError(t *testing.T) {
	pool := NewPool(2, zap.NewNop())

	first := errors.New("first")
	second := errors.New("second")

	err := pool.Run(context.Background(),
		func(context.Context) error { return first },
		func(context.Context) error { return second },
	)
	assert.Equal(t, first, err)
}

func TestPoolNoTasks(t *testing.T) {
	pool := NewPool(2, zap.NewNop())
	assert.NoError(t, pool.Run(context.Background()))
}
