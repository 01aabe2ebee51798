package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPool(t *testing.T) {
	p := NewPool(3, zaptest.NewLogger(t))
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(context.Background(), func() {
			mu.Lock()
			count++
			mu.Unlock()
		}))
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPool_DefaultsToOneWorker(t *testing.T) {
	p := NewPool(0, zaptest.NewLogger(t))
	done := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() { close(done) }))
	<-done
	p.Stop()
}

func TestPool_RunsConcurrently(t *testing.T) {
	p := NewPool(2, zaptest.NewLogger(t))
	defer p.Stop()

	// Both tasks must be running at once for either to finish
	var started sync.WaitGroup
	started.Add(2)
	finished := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		require.NoError(t, p.Submit(context.Background(), func() {
			started.Done()
			started.Wait()
			finished <- struct{}{}
		}))
	}

	for i := 0; i < 2; i++ {
		select {
		case <-finished:
		case <-time.After(2 * time.Second):
			t.Fatal("tasks did not run concurrently")
		}
	}
}

func TestPool_PanicDoesNotKillWorker(t *testing.T) {
	p := NewPool(1, zaptest.NewLogger(t))
	require.NoError(t, p.Submit(context.Background(), func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() { close(done) }))
	<-done
	p.Stop()
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(1, zaptest.NewLogger(t))
	p.Stop()
	p.Stop()

	assert.ErrorIs(t, p.Submit(context.Background(), func() {}), ErrPoolStopped)
}

func TestPool_SubmitHonoursContext(t *testing.T) {
	p := NewPool(1, zaptest.NewLogger(t))
	release := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() { <-release }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Submit(ctx, func() {}), context.DeadlineExceeded)

	close(release)
	p.Stop()
}
