package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// DecisionSuccess is returned by a processFunc when an item was processed.
	DecisionSuccess = 1

	// DecisionSkipped is returned by a processFunc when an item was skipped.
	DecisionSkipped = 0

	// DecisionRequeue is returned by a processFunc when an item needs
	// requeueing.
	DecisionRequeue = -1
)

// Queue is a processing queue holding any comparable type of items. It keeps
// per-item outcome bookkeeping, from which work progress is derived.
type Queue[T comparable] struct {
	sync.RWMutex
	hasStarted  bool
	hasFinished bool
	startTime   time.Time
	finishTime  time.Time
	head        int
	items       []T
	success     []T
	skipped     []T
	inProgress  map[T]struct{}
}

// NewQueue returns a pointer to a new [Queue].
func NewQueue[T comparable]() *Queue[T] {
	return &Queue[T]{
		inProgress: make(map[T]struct{}),
	}
}

// Enqueue adds items to the back of the queue. Enqueueing into a finished
// queue reopens it.
func (q *Queue[T]) Enqueue(items ...T) {
	q.Lock()
	defer q.Unlock()

	if q.hasFinished {
		q.finishTime = time.Time{}
		q.hasFinished = false
	}

	for _, item := range items {
		delete(q.inProgress, item)
		q.items = append(q.items, item)
	}
}

// Dequeue returns the next item and advances the queue head. The returned
// boolean reports whether an item was available.
func (q *Queue[T]) Dequeue() (T, bool) { //nolint:ireturn
	q.Lock()
	defer q.Unlock()

	if q.head >= len(q.items) {
		var zeroVal T

		return zeroVal, false
	}

	if q.head == len(q.items)-1 {
		if !q.hasFinished {
			q.finishTime = time.Now()
			q.hasFinished = true
		}
	}

	if !q.hasStarted {
		q.startTime = time.Now()
		q.hasStarted = true
	}

	item := q.items[q.head]
	q.head++

	return item, true
}

// HasRemainingItems returns whether the queue has items left to dequeue.
func (q *Queue[T]) HasRemainingItems() bool {
	q.RLock()
	defer q.RUnlock()

	return q.head < len(q.items)
}

// SetProcessing marks given items as in progress (processing).
func (q *Queue[T]) SetProcessing(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		q.inProgress[item] = struct{}{}
	}
}

// SetSuccess marks given in-progress items as successfully processed,
// removing them from the in-progress bookkeeping.
func (q *Queue[T]) SetSuccess(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.success = append(q.success, item)
	}
}

// SetSkipped marks given in-progress items as skipped, removing them from
// the in-progress bookkeeping.
func (q *Queue[T]) SetSkipped(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.skipped = append(q.skipped, item)
	}
}

// DequeueAndProcess sequentially dequeues and processes items using the
// given processFunc, until the queue is drained or the context is cancelled.
// An error is only returned for context cancellation; the processFunc
// reports its per-item outcome as one of [DecisionSuccess],
// [DecisionSkipped] or [DecisionRequeue].
func (q *Queue[T]) DequeueAndProcess(ctx context.Context, processFunc func(T) int) error {
	for {
		if ctx.Err() != nil {
			break
		}

		item, ok := q.Dequeue()
		if !ok {
			break
		}

		q.SetProcessing(item)

		switch processFunc(item) {
		case DecisionRequeue:
			q.Enqueue(item)

		case DecisionSkipped:
			q.SetSkipped(item)

		case DecisionSuccess:
			q.SetSuccess(item)
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-proc) %w", ctx.Err())
	}

	return nil
}
