package runners

import (
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// dockingDistanceSquared is the squared docking distance, precomputed
// to avoid a sqrt on every tick's proximity check.
const dockingDistanceSquared = dockingDistance * dockingDistance

// RunDockAtEntity drives a MoveToEntity(target, stop=true, desired=0)
// every tick and shrinks the ship's visual scale as it nears the
// target.
func RunDockAtEntity(w World, s *ship.Ship, t *task.Task, dt float64) Result {
	tgt, ok := targetID(t)
	if !ok {
		return Aborted
	}
	targetPos, _, ok := w.Locate(tgt)
	if !ok {
		return Aborted
	}
	squaredDistance := targetPos.Sub(s.Position).LengthSquared()
	ratio := squaredDistance / dockingDistanceSquared
	base := 1 - ratio*2
	scale := base * base
	if scale > 1 {
		scale = 1
	}
	if ratio < 0.5 {
		s.SetScale(0)
	} else {
		s.SetScale(scale)
	}

	moveTask := task.New("", task.KindMoveToEntity, map[string]any{
		"target":           tgt,
		"stop_at_target":   true,
		"desired_distance": 0.0,
	}, func() shared.Timestamp { return 0 })
	result := RunMoveToEntity(w, s, moveTask, dt)
	if result == Completed {
		s.SetScale(0)
		s.SetVisible(false)
		s.Dock(tgt)
		return Completed
	}
	return result
}

// StartUndock records the ship's starting position, releases the
// IsDocked marker, and wakes the docking target's interaction queue.
// It returns the id of the ship released from the queue's waiting
// list, if any, so the caller can complete that ship's AwaitingSignal
// task.
func StartUndock(w World, s *ship.Ship) (released shared.EntityID, ok bool) {
	target, wasDocked := s.Undock()
	if !wasDocked {
		return "", false
	}
	s.Tasks.Active().SetState("start_position", s.Position)
	s.Tasks.Active().SetState("undock_target", target)

	if q, found := w.Queue(target); found {
		return q.Finish()
	}
	return "", false
}

// RunUndock accelerates the ship forward from the docked position until
// it clears the docking distance, growing its visual scale
// symmetrically. Not cancelable.
func RunUndock(w World, s *ship.Ship, t *task.Task, dt float64) Result {
	startVal, _ := t.State("start_position")
	start, _ := startVal.(hexgrid.Vec2)

	cfg := shipConfig(w, s)
	s.ForwardVel = clamp(s.ForwardVel+cfg.MaxForwardAccel*dt, 0, cfg.MaxForwardSpeed)
	v := s.Velocity()
	s.Position = s.Position.Add(v.Scale(dt))

	squaredDistance := s.Position.Sub(start).LengthSquared()
	ratio := squaredDistance / dockingDistanceSquared
	if ratio > 1 {
		ratio = 1
	}
	s.SetScale(ratio)

	if squaredDistance > dockingDistanceSquared {
		s.SetScale(1)
		return Completed
	}
	return Ongoing
}
