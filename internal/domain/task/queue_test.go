package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/task"
)

func nowFn() func() shared.Timestamp {
	return func() shared.Timestamp { return 0 }
}

func TestQueue_PromoteAndComplete(t *testing.T) {
	q := task.NewQueue()
	assert.True(t, q.IsIdle())

	t1 := task.New("t1", task.KindMoveToEntity, nil, nowFn())
	require.NoError(t, q.Insert(t1, task.Append))
	assert.False(t, q.IsIdle())

	promoted, err := q.TryPromote()
	require.NoError(t, err)
	assert.Equal(t, t1, promoted)
	assert.Equal(t, shared.LifecycleActive, q.Active().Status())

	done, err := q.CompleteActive()
	require.NoError(t, err)
	assert.Equal(t, t1, done)
	assert.Nil(t, q.Active())
	assert.True(t, q.IsIdle())
}

func TestQueue_PrependRejectedOntoNonCancelableActive(t *testing.T) {
	q := task.NewQueue()
	active := task.New("active", task.KindUndock, nil, nowFn())
	require.NoError(t, q.Insert(active, task.Append))
	_, err := q.TryPromote()
	require.NoError(t, err)

	reactive := task.New("reactive", task.KindMoveToPosition, nil, nowFn())
	err = q.Insert(reactive, task.Prepend)
	assert.Error(t, err)
}

func TestQueue_CancelQueuedRemovesAndReportsCanceled(t *testing.T) {
	q := task.NewQueue()
	t1 := task.New("t1", task.KindExchangeWares, nil, nowFn())
	require.NoError(t, q.Insert(t1, task.Append))

	require.NoError(t, q.CancelQueued(t1))
	assert.Equal(t, shared.LifecycleCanceled, t1.Status())
	assert.Empty(t, q.Pending())
}

func TestQueue_CancelActiveClearsBacklogAndCancelsAll(t *testing.T) {
	q := task.NewQueue()
	active := task.New("active", task.KindMoveToEntity, nil, nowFn())
	queued := task.New("queued", task.KindExchangeWares, nil, nowFn())
	require.NoError(t, q.Insert(active, task.Append))
	_, err := q.TryPromote()
	require.NoError(t, err)
	require.NoError(t, q.Insert(queued, task.Append))

	aborted, cleared, err := q.CancelActive()
	require.NoError(t, err)
	assert.Equal(t, active, aborted)
	assert.Equal(t, shared.LifecycleCanceled, active.Status())
	require.Len(t, cleared, 1)
	assert.Equal(t, shared.LifecycleCanceled, queued.Status())
	assert.True(t, q.IsIdle())
}

func TestQueue_CancelActiveRejectedForNonCancelable(t *testing.T) {
	q := task.NewQueue()
	active := task.New("active", task.KindExchangeWares, nil, nowFn())
	require.NoError(t, q.Insert(active, task.Append))
	_, err := q.TryPromote()
	require.NoError(t, err)

	_, _, err = q.CancelActive()
	assert.Error(t, err)
}
