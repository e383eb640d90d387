package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewQueue_Success tests the queue factory function.
func TestNewQueue_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	assert.NotNil(t, q)
	assert.Empty(t, q.items)
	assert.Empty(t, q.success)
	assert.Empty(t, q.skipped)
	assert.NotNil(t, q.inProgress)
	assert.Equal(t, 0, q.head)
	assert.False(t, q.hasStarted)
	assert.False(t, q.hasFinished)
}

// TestEnqueueDequeue_Success tests enqueueing and dequeueing.
func TestEnqueueDequeue_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	q.Enqueue("item1", "item2", "item3")

	assert.Len(t, q.items, 3)
	assert.Equal(t, []string{"item1", "item2", "item3"}, q.items)

	item, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "item1", item)

	item, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "item2", item)

	item, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "item3", item)

	item, ok = q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, "", item)
}

// TestHasRemainingItems_Success tests for remaining items.
func TestHasRemainingItems_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()

	assert.False(t, q.HasRemainingItems())

	q.Enqueue(1, 2, 3)

	assert.True(t, q.HasRemainingItems())

	q.Dequeue()
	q.Dequeue()
	q.Dequeue()

	assert.False(t, q.HasRemainingItems())
}

// TestSetOutcomes_Success tests the in-progress, success and skipped
// bookkeeping transitions.
func TestSetOutcomes_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	q.SetProcessing("item1", "item2")
	assert.Len(t, q.inProgress, 2)

	q.SetSuccess("item1")
	assert.Contains(t, q.success, "item1")
	assert.Len(t, q.inProgress, 1)

	q.SetSkipped("item2")
	assert.Contains(t, q.skipped, "item2")
	assert.Empty(t, q.inProgress)
}

// TestProgress_Success tests the progress being reported.
func TestProgress_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()

	progress := q.Progress()
	assert.False(t, progress.HasStarted)
	assert.False(t, progress.HasFinished)
	assert.Zero(t, progress.StartTime, "start time should be zero")
	assert.Zero(t, progress.FinishTime, "finish time should be zero")
	assert.Zero(t, progress.ETA, "eta should be zero")
	assert.Zero(t, progress.TimeLeft, "time left should be zero")
	assert.InDelta(t, 0.0, progress.ProgressPct, 0)
	assert.Equal(t, 0, progress.TotalItems)
	assert.Equal(t, 0, progress.ProcessedItems)

	q.Enqueue(1, 2, 3, 4)
	q.Dequeue()
	q.SetSuccess(1)
	q.Dequeue()
	q.SetSkipped(2)
	q.Dequeue()
	q.SetSkipped(3)

	progress = q.Progress()
	assert.True(t, progress.HasStarted)
	assert.False(t, progress.HasFinished)
	assert.NotZero(t, progress.StartTime, "start time should not be zero")
	assert.Zero(t, progress.FinishTime, "finish time should be zero")
	assert.InDelta(t, 75.0, progress.ProgressPct, 0)
	assert.Equal(t, 4, progress.TotalItems)
	assert.Equal(t, 3, progress.ProcessedItems)
	assert.Equal(t, 1, progress.SuccessItems)
	assert.Equal(t, 2, progress.SkippedItems)
	assert.Equal(t, 0, progress.InProgressItems)

	q.Dequeue()
	q.SetSuccess(4)

	progress = q.Progress()
	assert.True(t, progress.HasStarted)
	assert.True(t, progress.HasFinished)
	assert.NotZero(t, progress.FinishTime, "finish time should not be zero")
	assert.Zero(t, progress.ETA, "eta should be zero")
	assert.InDelta(t, 100.0, progress.ProgressPct, 0)
	assert.Equal(t, 4, progress.ProcessedItems)
	assert.Equal(t, 2, progress.SuccessItems)
	assert.Equal(t, 2, progress.SkippedItems)
}

// TestDequeueAndProcess_Success tests sequential processing.
func TestDequeueAndProcess_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()
	q.Enqueue("success", "skip", "requeue", "success2")

	attempts := make(map[string]int)
	processFunc := func(item string) int {
		attempts[item]++

		switch item {
		case "success", "success2":
			return DecisionSuccess
		case "skip":
			return DecisionSkipped
		case "requeue":
			if attempts[item] < 2 {
				return DecisionRequeue
			}

			return DecisionSuccess
		default:
			return DecisionSkipped
		}
	}

	err := q.DequeueAndProcess(t.Context(), processFunc)

	require.NoError(t, err)

	assert.False(t, q.HasRemainingItems())
	assert.Len(t, q.success, 3)
	assert.Len(t, q.skipped, 1)
	assert.Equal(t, 2, attempts["requeue"])
}

// TestDequeueAndProcess_Fail_CtxCancel tests in-flight cancellation during
// sequential processing.
func TestDequeueAndProcess_Fail_CtxCancel(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	q.Enqueue(1, 2, 3, 4, 5)

	ctx, cancel := context.WithCancel(t.Context())

	processFunc := func(item int) int {
		if item == 3 {
			cancel()
		}

		return DecisionSuccess
	}

	err := q.DequeueAndProcess(ctx, processFunc)

	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)

	assert.True(t, q.HasRemainingItems())
}

// TestEnqueueAfterFinish_Success tests that a drained queue reopens when new
// items arrive.
func TestEnqueueAfterFinish_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()

	q.Enqueue(1, 2, 3)

	for q.HasRemainingItems() {
		item, ok := q.Dequeue()
		assert.True(t, ok)
		q.SetSuccess(item)
	}

	assert.True(t, q.hasStarted)
	assert.True(t, q.hasFinished)

	q.Enqueue(4)
	assert.False(t, q.hasFinished)
	assert.True(t, q.HasRemainingItems())
}
