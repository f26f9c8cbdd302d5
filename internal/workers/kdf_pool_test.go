package workers

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKDFPool_Size(t *testing.T) {
	assert.Equal(t, 3, NewKDFPool(3).Size())
	assert.Equal(t, runtime.NumCPU(), NewKDFPool(0).Size())
	assert.Equal(t, runtime.NumCPU(), NewKDFPool(-1).Size())
}

func TestKDFPool_Do_RunsFn(t *testing.T) {
	pool := NewKDFPool(1)

	called := false
	err := pool.Do(context.Background(), func() { called = true })

	require.NoError(t, err)
	assert.True(t, called)
}

func TestKDFPool_Do_BoundsConcurrency(t *testing.T) {
	const size = 2
	pool := NewKDFPool(size)

	var (
		running atomic.Int32
		peak    atomic.Int32
		wg      sync.WaitGroup
	)

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pool.Do(context.Background(), func() {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(size))
	assert.Equal(t, int32(0), running.Load())
}

func TestKDFPool_Do_CancelledWhileWaiting(t *testing.T) {
	pool := NewKDFPool(1)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = pool.Do(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	called := false
	err := pool.Do(ctx, func() { called = true })

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)

	close(release)
}
