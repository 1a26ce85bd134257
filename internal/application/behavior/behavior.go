// Package behavior implements the autonomous task-planning selectors:
// AutoTrade, AutoMine, AutoHarvest, AutoConstruct. Each selector runs
// every tick against idle ships whose back-off timer has elapsed and
// either plans a task sequence or advances the timer.
package behavior

import (
	"math/rand"

	"github.com/duskline/hexsim/internal/domain/shared"
)

// backoffMin/backoffMax bound the 1-2s idle-retry delay applied after
// a selection failure.
const (
	backoffMin = shared.Duration(1000)
	backoffMax = shared.Duration(2000)
)

// BackOff returns the next_idle_update timestamp after a failed
// selection attempt: now plus a jittered 1-2s delay.
func BackOff(now shared.Timestamp, rng *rand.Rand) shared.Timestamp {
	span := uint64(backoffMax - backoffMin)
	jitter := shared.Duration(0)
	if rng != nil && span > 0 {
		jitter = shared.Duration(rng.Int63n(int64(span)))
	}
	return now.Plus(backoffMin + jitter)
}

// Plan is an ordered sequence of task-creation commands a selector
// produces; the engine's task-creation phase turns each step into a
// task.Task queued on the ship.
type Plan struct {
	Steps []PlanStep
}

// PlanStep names one task to create, with its constructor params.
type PlanStep struct {
	Kind   string // matches task.Kind.String()
	Params map[string]any
}

func moveTo(target shared.EntityID, stop bool, desiredDistance float64) PlanStep {
	return PlanStep{Kind: "MoveToEntity", Params: map[string]any{
		"target": target, "stop_at_target": stop, "desired_distance": desiredDistance,
	}}
}

func requestAccess(target shared.EntityID) PlanStep {
	return PlanStep{Kind: "RequestAccess", Params: map[string]any{"target": target}}
}

func dock(target shared.EntityID) PlanStep {
	return PlanStep{Kind: "DockAtEntity", Params: map[string]any{"target": target}}
}

func undock() PlanStep {
	return PlanStep{Kind: "Undock", Params: map[string]any{}}
}

// dockDistance is the desired_distance AutoTrade/AutoHarvest/
// AutoConstruct use when approaching a station, gas giant, or
// construction site. AutoMine approaches its asteroid with 0.
const dockDistance = 60.0
