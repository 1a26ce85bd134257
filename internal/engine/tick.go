package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/duskline/hexsim/internal/application/behavior"
	"github.com/duskline/hexsim/internal/application/runners"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// BehaviorFn selects a task plan for an idle ship whose back-off timer
// has elapsed. ok=false means "nothing to do", and the engine applies
// behavior.BackOff before trying again.
type BehaviorFn func(e *Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool)

// RegisterBehavior wires a named autonomous behavior (e.g. "AutoTrade")
// so ships carrying it get planned every tick once idle.
func (e *Engine) RegisterBehavior(name string, fn BehaviorFn) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.behaviors == nil {
		e.behaviors = make(map[string]BehaviorFn)
	}
	e.behaviors[name] = fn
}

func (e *Engine) nowTimestamp() shared.Timestamp {
	return shared.Timestamp(e.Clock.Now().UnixMilli())
}

// Tick advances the simulation by one fixed step, running the phases in
// strict order: behavior selection, task creation, promotion, parallel
// task runners, completion, asteroid lifecycle, orbit integration.
// No-op while Paused.
func (e *Engine) Tick() {
	if e.State() != Running {
		return
	}
	now := e.nowTimestamp()
	dt := e.Config.TickDelta

	e.behaviorSelectionPhase(now)
	active := e.promotionPhase(now)
	outcomes := e.runnerPhase(active, dt, now)
	e.completionPhase(outcomes)
	e.asteroidLifecyclePhase(now)
	e.orbitPhase(dt)
}

// behaviorSelectionPhase plans new task sequences for idle ships whose
// next_idle_update has elapsed.
func (e *Engine) behaviorSelectionPhase(now shared.Timestamp) {
	for _, s := range e.Ships() {
		if !s.IsIdle() || s.Behavior == nil {
			continue
		}
		if now.HasNotPassed(s.Behavior.NextIdleUpdate) {
			continue
		}
		e.mu.RLock()
		fn, ok := e.behaviors[s.Behavior.Name]
		e.mu.RUnlock()
		if !ok {
			continue
		}
		plan, ok := fn(e, s, now)
		if !ok {
			s.Behavior.NextIdleUpdate = behavior.BackOff(now, e.rng)
			continue
		}
		e.createTasks(s, plan)
	}
}

func (e *Engine) createTasks(s *ship.Ship, plan behavior.Plan) {
	for _, step := range plan.Steps {
		kind, ok := kindFromString(step.Kind)
		if !ok {
			continue
		}
		t := task.New(shared.NewEntityID("task"), kind, step.Params, e.nowTimestamp)
		if err := s.Tasks.Insert(t, task.Append); err != nil {
			e.Logger.Log("warn", "task creation rejected", map[string]interface{}{"ship": s.ID, "kind": kind.String(), "err": err.Error()})
			return
		}
	}
}

// promotionPhase advances each ship's queue head into the active slot
// and runs the kind's start-of-life hook, returning the ships that now
// have an active task to run this tick.
func (e *Engine) promotionPhase(now shared.Timestamp) []*ship.Ship {
	var active []*ship.Ship
	for _, s := range e.Ships() {
		t, err := s.Tasks.TryPromote()
		if err != nil {
			e.Logger.Log("error", "promotion failed", map[string]interface{}{"ship": s.ID, "err": err.Error()})
		}
		if t != nil {
			e.startSideEffects(s, t, now)
			e.emit("TaskStarted", map[string]any{"ship": s.ID, "kind": t.Kind.String()})
		}
		if s.Tasks.Active() != nil {
			active = append(active, s)
		}
	}
	return active
}

type runnerOutcome struct {
	ship   *ship.Ship
	task   *task.Task
	result runners.Result
}

// runnerPhase executes one tick of every active task's runner in
// parallel across ships. Each ship's runner touches only its own ship
// plus the specific asteroid/queue/site its task names, so this is
// race-free without per-call locking beyond what those types already do.
func (e *Engine) runnerPhase(active []*ship.Ship, dt float64, now shared.Timestamp) []runnerOutcome {
	outcomes := make([]runnerOutcome, len(active))
	g, _ := errgroup.WithContext(context.Background())
	for i, s := range active {
		i, s := i, s
		g.Go(func() error {
			t := s.Tasks.Active()
			outcomes[i] = runnerOutcome{ship: s, task: t, result: e.runTask(s, t, dt, now)}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// completionPhase applies runner verdicts sequentially, one writer at
// a time: completed tasks are finalized, aborted tasks are reverted
// and finalized, in call order.
func (e *Engine) completionPhase(outcomes []runnerOutcome) {
	for _, o := range outcomes {
		switch o.result {
		case runners.Completed:
			if _, err := o.ship.Tasks.CompleteActive(); err != nil {
				e.Logger.Log("error", "complete failed", map[string]interface{}{"ship": o.ship.ID, "err": err.Error()})
				continue
			}
			e.emit("TaskCompleted", map[string]any{"ship": o.ship.ID, "kind": o.task.Kind.String()})
		case runners.Aborted:
			e.revertSideEffects(o.ship, o.task)
			if _, err := o.ship.Tasks.CompleteActive(); err != nil {
				e.Logger.Log("error", "abort-complete failed", map[string]interface{}{"ship": o.ship.ID, "err": err.Error()})
				continue
			}
			e.emit("TaskAborted", map[string]any{"ship": o.ship.ID, "kind": o.task.Kind.String()})
		}
	}
}

// asteroidLifecyclePhase advances drift-out and respawn for every
// registered field.
func (e *Engine) asteroidLifecyclePhase(now shared.Timestamp) {
	type entry struct {
		key  fieldKey
		meta fieldMetadata
	}
	e.mu.RLock()
	entries := make([]entry, 0, len(e.fieldMeta))
	for k, meta := range e.fieldMeta {
		entries = append(entries, entry{key: k, meta: meta})
	}
	e.mu.RUnlock()

	for _, ent := range entries {
		e.mu.RLock()
		field := e.asteroidFields[ent.key]
		e.mu.RUnlock()
		if field == nil {
			continue
		}
		despawned := field.TickDriftOut(now)
		for _, id := range despawned {
			e.emit("AsteroidDriftedOut", map[string]any{"asteroid": id, "sector": ent.key.Coord})
		}
		respawned := field.TickRespawn(now, ent.meta.OreMax, ent.meta.AvgVelocity)
		if len(respawned) == 0 {
			continue
		}
		e.mu.Lock()
		for _, a := range respawned {
			e.asteroidIndex[a.ID] = ent.key
		}
		e.mu.Unlock()
		for _, a := range respawned {
			e.emit("AsteroidRespawned", map[string]any{"asteroid": a.ID, "sector": ent.key.Coord})
		}
	}
}

// orbitPhase advances every orbiting body's angle.
func (e *Engine) orbitPhase(dt float64) {
	e.mu.RLock()
	bodies := append([]*orbitingBody{}, e.orbitingBodies...)
	e.mu.RUnlock()
	for _, b := range bodies {
		b.Orbit.Advance(dt)
	}
}
