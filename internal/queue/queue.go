// Package queue is a cooperative task queue: a fixed worker pool pulling
// independent tasks, with timer-deferred scheduling for continuations.
package queue

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task is one unit of background work. Tasks are expected to be idempotent:
// scheduling is at-least-once under restarts and lock supersession.
type Task func(ctx context.Context)

// Queue runs scheduled tasks on a bounded pool of workers.
type Queue struct {
	tasks   chan Task
	workers int

	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool

	wg sync.WaitGroup
}

func New(workers int) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		tasks:   make(chan Task, 256),
		workers: workers,
		timers:  make(map[*time.Timer]struct{}),
	}
}

// Start launches the worker pool. Workers exit when ctx is canceled and the
// task channel has drained.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go func(worker int) {
			defer q.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task, ok := <-q.tasks:
					if !ok {
						return
					}
					q.run(ctx, worker, task)
				}
			}
		}(i)
	}
}

func (q *Queue) run(ctx context.Context, worker int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			// A panicking task must not take the worker down with it.
			log.Printf("[queue] worker %d recovered from panic: %v", worker, r)
		}
	}()
	task(ctx)
}

// Schedule enqueues task after delay. A zero delay enqueues immediately.
func (q *Queue) Schedule(delay time.Duration, task Task) {
	if delay <= 0 {
		q.enqueue(task)
		return
	}

	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, timer)
		q.mu.Unlock()
		q.enqueue(task)
	})
	q.timers[timer] = struct{}{}
	q.mu.Unlock()
}

// enqueue sends on the task channel under the mutex. Holding the lock across
// the send is what keeps Stop's close from racing an in-flight Schedule.
func (q *Queue) enqueue(task Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	select {
	case q.tasks <- task:
	default:
		// Backpressure: the queue is full, drop and rely on the next
		// scheduled cycle to pick the work up again.
		log.Printf("[queue] task channel full, dropping task")
	}
}

// Stop cancels pending timers, closes the queue and waits for in-flight
// tasks to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	for timer := range q.timers {
		timer.Stop()
	}
	q.timers = nil
	// Close under the same lock that guards every send, so no task can hit
	// a closed channel.
	close(q.tasks)
	q.mu.Unlock()

	q.wg.Wait()
}
