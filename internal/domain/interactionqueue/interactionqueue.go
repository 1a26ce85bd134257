// Package interactionqueue arbitrates access to capacity-limited
// targets (stations, gas giants): a fixed number of admitted slots plus
// a FIFO of waiters, with a signal channel that wakes the next waiter
// when a slot frees up.
package interactionqueue

import (
	"sync"

	"github.com/duskline/hexsim/internal/domain/shared"
)

// Outcome is the result of a TryStart call.
type Outcome int

const (
	Admitted Outcome = iota
	Queued
)

// Queue arbitrates access to one capacity-limited target. Zero value is
// not usable; construct with New.
type Queue struct {
	mu           sync.Mutex
	maxConcurrent int
	inUse        int
	waiting      []shared.EntityID
}

func New(maxConcurrent int) *Queue {
	return &Queue{maxConcurrent: maxConcurrent}
}

// TryStart admits shipID if a slot is free, otherwise appends it to the
// waiting list and returns Queued.
func (q *Queue) TryStart(shipID shared.EntityID) Outcome {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.inUse < q.maxConcurrent {
		q.inUse++
		return Admitted
	}
	q.waiting = append(q.waiting, shipID)
	return Queued
}

// Finish releases one admitted slot and, if a waiter is present, admits the
// head of the waiting list and returns its id so the caller can emit the
// Completed(AwaitingSignal) event for it.
func (q *Queue) Finish() (released shared.EntityID, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.inUse > 0 {
		q.inUse--
	}
	if len(q.waiting) == 0 {
		return "", false
	}
	next := q.waiting[0]
	q.waiting = q.waiting[1:]
	q.inUse++
	return next, true
}

// Cancel removes shipID from the waiting list if present; it has no
// effect on in_use (the ship was never admitted).
func (q *Queue) Cancel(shipID shared.EntityID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, id := range q.waiting {
		if id == shipID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return
		}
	}
}

// InUse and Waiting expose current counts for invariant checks: admitted
// + waiting must equal the number of outstanding RequestAccess plus
// AwaitingSignal tasks targeting this queue.
func (q *Queue) InUse() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inUse
}

func (q *Queue) WaitingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

func (q *Queue) WaitingIDs() []shared.EntityID {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]shared.EntityID, len(q.waiting))
	copy(out, q.waiting)
	return out
}
