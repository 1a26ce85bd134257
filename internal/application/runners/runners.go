// Package runners implements the per-tick execution algorithms for the
// primitive task kinds, every kind except the MoveToSector planning
// marker and AwaitingSignal. A runner is called once per tick
// for a ship's active task and returns whether the task is still
// ongoing, has completed, or aborted.
package runners

import (
	"math"

	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/construction"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/interactionqueue"
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/sector"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// Result is a runner's per-tick verdict.
type Result int

const (
	Ongoing Result = iota
	Completed
	Aborted
)

// World is the read/write surface a runner needs: entity lookups that
// resolve to positions and sector membership, plus the registries for
// interaction queues, asteroid fields, and construction sites. Task
// runners only ever read shared state and write to their own ship's
// fields or to the specific asteroid/queue/site their task names.
type World struct {
	Manifest *manifest.Manifest
	Sectors  *sector.Graph

	// Locate resolves any targetable entity (ship, station, asteroid,
	// gas giant, construction site) to a world position and the sector
	// it resides in. ok=false models "target entity vanished."
	Locate func(id shared.EntityID) (pos hexgrid.Vec2, coord hexgrid.Coord, ok bool)

	// Queue resolves an interaction-queue target to its queue.
	Queue func(targetID shared.EntityID) (*interactionqueue.Queue, bool)

	// Asteroid resolves an asteroid id to its record and owning field.
	Asteroid func(id shared.EntityID) (*asteroid.Asteroid, *asteroid.Field, bool)

	// ConstructionSite resolves a site id to its registry.
	ConstructionSite func(id shared.EntityID) (*construction.Site, bool)

	// Inventory resolves any entity with an inventory (ship or station).
	Inventory func(id shared.EntityID) (*inventory.Inventory, bool)

	EmitAsteroidFullyMined func(asteroidID shared.EntityID, despawnTimer shared.Timestamp)
}

// dockingDistance is the proximity threshold a ship must close to
// before docking finishes.
const dockingDistance = 50.0

// gateTravelSeconds is how long a full gate transit takes.
const gateTravelSeconds = 3.0

// gateBlend is the fraction of travel spent easing off the origin
// gate before riding the curve proper.
const gateBlend = 0.15

func targetID(t *task.Task) (shared.EntityID, bool) {
	v, ok := t.Param("target")
	if !ok {
		return "", false
	}
	id, ok := v.(shared.EntityID)
	return id, ok
}

// RunMoveToEntity drives the per-tick steering and throttle algorithm
// toward a target entity.
func RunMoveToEntity(w World, s *ship.Ship, t *task.Task, dt float64) Result {
	tgt, ok := targetID(t)
	if !ok {
		return Aborted
	}
	targetPos, _, ok := w.Locate(tgt)
	if !ok {
		return Aborted
	}
	stopAtTarget, _ := t.Param("stop_at_target")
	stop, _ := stopAtTarget.(bool)
	desiredDistance := 0.0
	if v, ok := t.Param("desired_distance"); ok {
		if f, ok := v.(float64); ok {
			desiredDistance = f
		}
	}

	cfg := shipConfig(w, s)

	delta := targetPos.Sub(s.Position)
	angleErr := normalizeAngle(math.Atan2(delta.Y, delta.X) - (s.Rotation + math.Pi/2))

	if angleErr-s.AngularVel > 0 {
		s.AngularVel = clamp(s.AngularVel+cfg.MaxAngularAccel*dt, -cfg.MaxAngularSpeed, cfg.MaxAngularSpeed)
	} else {
		s.AngularVel = clamp(s.AngularVel-cfg.MaxAngularAccel*dt, -cfg.MaxAngularSpeed, cfg.MaxAngularSpeed)
	}
	s.Rotation += s.AngularVel * dt

	distance := delta.Length() - desiredDistance
	accelerate := false
	switch {
	case math.Abs(angleErr) > math.Pi/3:
		accelerate = false
	case stop:
		stopDistance := (s.ForwardVel * s.ForwardVel) / (2 * cfg.MaxDeceleration)
		travelThisTick := s.ForwardVel * dt
		accelerate = distance-travelThisTick > stopDistance
	default:
		accelerate = true
	}

	if accelerate {
		s.ForwardVel = clamp(s.ForwardVel+cfg.MaxForwardAccel*dt, 0, cfg.MaxForwardSpeed)
	} else {
		s.ForwardVel = clamp(s.ForwardVel-cfg.MaxDeceleration*dt, 0, cfg.MaxForwardSpeed)
	}
	v := s.Velocity()
	s.Position = s.Position.Add(v.Scale(dt))

	if distance < 10 {
		if stop {
			if s.ForwardVel < 0.3 {
				s.ForwardVel = 0
				return Completed
			}
			return Ongoing
		}
		return Completed
	}
	return Ongoing
}

func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type shipPhysics struct {
	MaxForwardAccel float64
	MaxForwardSpeed float64
	MaxAngularAccel float64
	MaxAngularSpeed float64
	MaxDeceleration float64
}

func shipConfig(w World, s *ship.Ship) shipPhysics {
	cfg, err := w.Manifest.ShipConfig(s.ConfigID)
	if err != nil {
		return shipPhysics{MaxForwardAccel: 1, MaxForwardSpeed: 10, MaxAngularAccel: 1, MaxAngularSpeed: 1, MaxDeceleration: 1}
	}
	return shipPhysics{
		MaxForwardAccel: cfg.MaxForwardAccel,
		MaxForwardSpeed: cfg.MaxForwardSpeed,
		MaxAngularAccel: cfg.MaxAngularAccel,
		MaxAngularSpeed: cfg.MaxAngularSpeed,
		MaxDeceleration: cfg.MaxDeceleration,
	}
}
