package runners

import (
	"github.com/duskline/hexsim/internal/domain/interactionqueue"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/task"
)

// AccessOutcome distinguishes the three ways RequestAccess can resolve
// in its single tick.
type AccessOutcome int

const (
	AccessAdmitted AccessOutcome = iota
	AccessQueued
	AccessTargetMissing
)

// RunRequestAccess runs for exactly one tick: it calls try_start on the
// target's interaction queue and reports the outcome so the caller can
// either let the ship proceed (Admitted), prepend an AwaitingSignal
// task (Queued), or collapse the dependent dock/exchange/undock tasks
// (TargetMissing).
func RunRequestAccess(w World, t *task.Task, shipID shared.EntityID) AccessOutcome {
	targetVal, _ := t.Param("target")
	target, _ := targetVal.(shared.EntityID)

	q, ok := w.Queue(target)
	if !ok {
		return AccessTargetMissing
	}
	if q.TryStart(shipID) == interactionqueue.Admitted {
		return AccessAdmitted
	}
	return AccessQueued
}
