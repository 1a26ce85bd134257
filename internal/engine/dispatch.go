package engine

import (
	"fmt"

	"github.com/duskline/hexsim/internal/application/runners"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// kindFromString maps a behavior PlanStep's Kind string back to a
// task.Kind, mirroring task.Kind.String(). Planners name steps by
// string so they don't need to import the task package.
func kindFromString(s string) (task.Kind, bool) {
	switch s {
	case "AwaitingSignal":
		return task.KindAwaitingSignal, true
	case "RequestAccess":
		return task.KindRequestAccess, true
	case "DockAtEntity":
		return task.KindDockAtEntity, true
	case "Undock":
		return task.KindUndock, true
	case "MoveToEntity":
		return task.KindMoveToEntity, true
	case "MoveToPosition":
		return task.KindMoveToPosition, true
	case "MoveToSector":
		return task.KindMoveToSector, true
	case "UseGate":
		return task.KindUseGate, true
	case "ExchangeWares":
		return task.KindExchangeWares, true
	case "MineAsteroid":
		return task.KindMineAsteroid, true
	case "HarvestGas":
		return task.KindHarvestGas, true
	case "Construct":
		return task.KindConstruct, true
	default:
		return 0, false
	}
}

// world builds the runners.World view of this Engine's registries.
func (e *Engine) world() runners.World {
	return runners.World{
		Manifest:         e.Manifest,
		Sectors:          e.Sectors,
		Locate:           e.locate,
		Queue:            e.InteractionQueue,
		Asteroid:         e.Asteroid,
		ConstructionSite: e.ConstructionSite,
		Inventory:        e.inventoryFor,
		EmitAsteroidFullyMined: func(asteroidID shared.EntityID, despawnAt shared.Timestamp) {
			e.emit("AsteroidFullyMined", map[string]any{"asteroid": asteroidID, "despawn_at": despawnAt})
		},
	}
}

func (e *Engine) locate(id shared.EntityID) (pos hexgrid.Vec2, coord hexgrid.Coord, ok bool) {
	if s, found := e.Ship(id); found {
		return s.Position, s.Sector, true
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	for key, field := range e.asteroidFields {
		for _, a := range field.Live() {
			if a.ID == id {
				return a.LocalPos, key.Coord, true
			}
		}
	}
	if g, ok := e.gasGiants[id]; ok {
		return g.LocalPos, g.Coord, true
	}
	return pos, coord, false
}

func (e *Engine) inventoryFor(id shared.EntityID) (*inventory.Inventory, bool) {
	if s, ok := e.Ship(id); ok {
		return s.Inventory, true
	}
	return e.StationInventory(id)
}

// startSideEffects runs the one-time per-kind setup a promoted task
// needs, called once right after TryPromote.
func (e *Engine) startSideEffects(s *ship.Ship, t *task.Task, now shared.Timestamp) {
	switch t.Kind {
	case task.KindUseGate:
		runners.StartUseGate(e.Sectors, s)
	case task.KindUndock:
		if released, ok := runners.StartUndock(e.world(), s); ok {
			e.emit("InteractionQueueReleased", map[string]any{"target": released})
		}
	case task.KindExchangeWares:
		runners.StartExchangeWares(t, now)
	case task.KindMineAsteroid:
		runners.StartMineAsteroid(t, now)
	case task.KindHarvestGas:
		runners.StartHarvestGas(t, now)
	case task.KindConstruct:
		runners.StartConstruct(e.world(), s, t)
	}
}

// runTask executes one tick of the active task's runner. KindMoveToSector
// is a planning marker that must be expanded into MoveToEntity/UseGate
// steps before it ever reaches here; reaching it live is a missed
// precondition.
func (e *Engine) runTask(s *ship.Ship, t *task.Task, dt float64, now shared.Timestamp) runners.Result {
	w := e.world()
	switch t.Kind {
	case task.KindMoveToEntity:
		return runners.RunMoveToEntity(w, s, t, dt)
	case task.KindMoveToPosition:
		return runners.RunMoveToEntity(w, s, t, dt)
	case task.KindUseGate:
		return runners.RunUseGate(e.Sectors, s, t, dt)
	case task.KindDockAtEntity:
		return runners.RunDockAtEntity(w, s, t, dt)
	case task.KindUndock:
		return runners.RunUndock(w, s, t, dt)
	case task.KindExchangeWares:
		return runners.RunExchangeWares(w, s, t, now)
	case task.KindMineAsteroid:
		return runners.RunMineAsteroid(w, s, t, now)
	case task.KindHarvestGas:
		return runners.RunHarvestGas(w, s, t, now)
	case task.KindConstruct:
		return runners.RunConstruct()
	case task.KindRequestAccess:
		switch runners.RunRequestAccess(w, t, s.ID) {
		case runners.AccessAdmitted:
			return runners.Completed
		case runners.AccessTargetMissing:
			return runners.Aborted
		default:
			return runners.Ongoing
		}
	case task.KindAwaitingSignal:
		// Advances only when an external event calls ResolveAwaitingSignal;
		// never completes on its own tick.
		return runners.Ongoing
	case task.KindMoveToSector:
		if e.Config.StrictMode {
			panic(fmt.Sprintf("engine: MoveToSector marker reached run_tasks for ship %s", s.ID))
		}
		e.Logger.Log("warn", "MoveToSector reached run_tasks directly; skipping", map[string]interface{}{"ship": s.ID})
		return runners.Aborted
	default:
		return runners.Aborted
	}
}

// revertSideEffects undoes a canceled task's reservations.
func (e *Engine) revertSideEffects(s *ship.Ship, t *task.Task) {
	w := e.world()
	switch t.Kind {
	case task.KindExchangeWares:
		runners.RevertExchangeWares(w, s, t)
	case task.KindMineAsteroid:
		runners.RevertMineAsteroid(w, t)
	case task.KindHarvestGas:
		runners.RevertHarvestGas(w, t)
	case task.KindConstruct:
		runners.RevertConstruct(w, s, t)
	}
}

// ResolveAwaitingSignal completes an AwaitingSignal task for shipID, the
// only way that task kind ever advances.
func (e *Engine) ResolveAwaitingSignal(shipID shared.EntityID) error {
	s, ok := e.Ship(shipID)
	if !ok {
		return fmt.Errorf("engine: unknown ship %s", shipID)
	}
	active := s.Tasks.Active()
	if active == nil || active.Kind != task.KindAwaitingSignal {
		return fmt.Errorf("engine: ship %s has no active AwaitingSignal task", shipID)
	}
	t, err := s.Tasks.CompleteActive()
	if err != nil {
		return err
	}
	e.emit("TaskCompleted", map[string]any{"ship": shipID, "kind": t.Kind.String()})
	return nil
}
