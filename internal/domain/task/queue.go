package task

import (
	"fmt"
)

// lifecycleEventKind names the four events a primitive task's lifecycle
// can emit.
type lifecycleEventKind int

const (
	EventStarted lifecycleEventKind = iota
	EventCompleted
	EventCanceledWhileQueued
	EventCanceledWhileActive
)

// LifecycleEvent describes one task-lifecycle transition. Queue's methods
// do not build one; they return the affected tasks to the caller.
type LifecycleEvent struct {
	Kind    lifecycleEventKind
	Task    *Task
	Aborted bool
	Err     error
}

// Queue is one ship's task queue: at most one active task plus an
// ordered backlog. Promotion is strictly serialized per ship, which
// this type's single-goroutine-per-ship usage contract (see package
// runners) relies on instead of its own locking.
type Queue struct {
	active  *Task
	pending []*Task
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) Active() *Task { return q.active }

func (q *Queue) IsIdle() bool { return q.active == nil && len(q.pending) == 0 }

func (q *Queue) Pending() []*Task {
	out := make([]*Task, len(q.pending))
	copy(out, q.pending)
	return out
}

// Insert appends or prepends t to the backlog per mode. Prepending onto
// an active task that is not cancelable-while-active is rejected.
func (q *Queue) Insert(t *Task, mode InsertMode) error {
	if mode == Prepend && q.active != nil && !q.active.Kind.CancelableWhileActive() {
		return fmt.Errorf("task: cannot prepend onto non-cancelable active task %s", q.active.Kind)
	}
	switch mode {
	case Prepend:
		q.pending = append([]*Task{t}, q.pending...)
	default:
		q.pending = append(q.pending, t)
	}
	return nil
}

// TryPromote promotes the head of pending to active if there is no
// active task. Returns the promoted task, or nil if nothing was
// promoted (already active, or backlog empty).
func (q *Queue) TryPromote() (*Task, error) {
	if q.active != nil || len(q.pending) == 0 {
		return nil, nil
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	if err := next.Start(); err != nil {
		return nil, err
	}
	q.active = next
	return next, nil
}

// CompleteActive finalizes the active task (normal finish or aborted
// runtime failure) and clears the active slot so the next tick's
// promotion step can pick up the backlog.
func (q *Queue) CompleteActive() (*Task, error) {
	if q.active == nil {
		return nil, fmt.Errorf("task: no active task to complete")
	}
	t := q.active
	if err := t.Complete(); err != nil {
		return nil, err
	}
	q.active = nil
	return t, nil
}

// CancelQueued removes t from the backlog (not the active task) if
// present and cancelable-while-queued.
func (q *Queue) CancelQueued(t *Task) error {
	if !t.Kind.CancelableWhileQueued() {
		return fmt.Errorf("task: %s is not cancelable while queued", t.Kind)
	}
	for i, p := range q.pending {
		if p == t {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return t.Cancel()
		}
	}
	return fmt.Errorf("task: task %s not found in queue", t.ID)
}

// CancelActive cancels the active task (if cancelable-while-active) and
// clears the remaining backlog, canceling every queued task. It runs no
// revert handler and emits no event; the canceled active task and the
// cleared tasks are returned to the caller.
func (q *Queue) CancelActive() (aborted *Task, clearedQueue []*Task, err error) {
	if q.active == nil {
		return nil, nil, fmt.Errorf("task: no active task to cancel")
	}
	if !q.active.Kind.CancelableWhileActive() {
		return nil, nil, fmt.Errorf("task: %s is not cancelable while active", q.active.Kind)
	}
	aborted = q.active
	if err := aborted.Cancel(); err != nil {
		return nil, nil, err
	}
	q.active = nil

	cleared := q.pending
	q.pending = nil
	for _, p := range cleared {
		_ = p.Cancel()
	}
	return aborted, cleared, nil
}
