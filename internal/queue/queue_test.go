package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueRunsScheduledTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := New(2)
	q.Start(ctx)

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		q.Schedule(0, func(context.Context) {
			defer wg.Done()
			ran.Add(1)
		})
	}
	wg.Wait()
	q.Stop()

	assert.Equal(t, int32(10), ran.Load())
}

func TestQueueDelayedTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := New(1)
	q.Start(ctx)
	defer q.Stop()

	done := make(chan struct{})
	start := time.Now()
	q.Schedule(30*time.Millisecond, func(context.Context) { close(done) })

	select {
	case <-done:
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("delayed task never ran")
	}
}

func TestQueueRecoversFromPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := New(1)
	q.Start(ctx)

	done := make(chan struct{})
	q.Schedule(0, func(context.Context) { panic("boom") })
	q.Schedule(0, func(context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after panic")
	}
	q.Stop()
}

func TestQueueScheduleDuringStopDoesNotPanic(t *testing.T) {
	for i := 0; i < 100; i++ {
		ctx, cancel := context.WithCancel(context.Background())

		q := New(2)
		q.Start(ctx)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q.Schedule(0, func(context.Context) {})
			}
		}()
		go func() {
			defer wg.Done()
			q.Stop()
		}()
		wg.Wait()
		cancel()
	}
}

func TestQueueStopCancelsPendingTimers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := New(1)
	q.Start(ctx)

	var ran atomic.Int32
	q.Schedule(time.Hour, func(context.Context) { ran.Add(1) })
	q.Stop()

	q.Schedule(0, func(context.Context) { ran.Add(1) })
	assert.Equal(t, int32(0), ran.Load(), "nothing runs after Stop")
}
