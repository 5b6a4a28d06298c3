package agentrun

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryAgent(t *testing.T) {
	var count int64
	pool := NewPool(0)

	err := pool.Run(context.Background(), 5, func(_ context.Context, _ int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestPoolPropagatesFirstErrorAndCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool(0)

	err := pool.Run(context.Background(), 3, func(ctx context.Context, agentIndex int) error {
		if agentIndex == 0 {
			return boom
		}
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, boom)
}

func TestPoolRejectsAgentCountOutOfRange(t *testing.T) {
	pool := NewPool(0)
	err := pool.Run(context.Background(), 0, func(context.Context, int) error { return nil })
	assert.Error(t, err)
}

func TestPoolConcurrencyCapIsRespected(t *testing.T) {
	const maxConcurrent = 2
	const numAgents = 4
	pool := NewPool(maxConcurrent)

	started := make(chan struct{}, numAgents)
	release := make(chan struct{})
	var running, peak int64

	go func() {
		for i := 0; i < maxConcurrent; i++ {
			<-started
		}
		close(release)
	}()

	err := pool.Run(context.Background(), numAgents, func(_ context.Context, _ int) error {
		n := atomic.AddInt64(&running, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		started <- struct{}{}
		<-release
		atomic.AddInt64(&running, -1)
		return nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(maxConcurrent))
}
