package engine

import (
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/shared"
)

// Snapshot is a flat, read-only copy of engine state for a serializer to
// persist between ticks. Nothing in the tick loop reads a Snapshot
// back — restoring one is entirely a host-side concern.
type Snapshot struct {
	TakenAt           shared.Timestamp
	Ships             []ShipSnapshot
	Stations          []StationSnapshot
	AsteroidFields    []AsteroidFieldSnapshot
	ConstructionSites []ConstructionSiteSnapshot
}

type TaskSnapshot struct {
	ID     shared.EntityID
	Kind   string
	Status string
}

type InventoryItemSnapshot struct {
	ItemID          string
	Current         int
	PlannedIncoming int
	PlannedOutgoing int
}

type ShipSnapshot struct {
	ID           shared.EntityID
	ConfigID     string
	Sector       hexgrid.Coord
	Position     hexgrid.Vec2
	Rotation     float64
	BehaviorName string
	Inventory    []InventoryItemSnapshot
	ActiveTask   *TaskSnapshot
	PendingTasks []TaskSnapshot
}

type StationSnapshot struct {
	ID        shared.EntityID
	Sector    hexgrid.Coord
	Inventory []InventoryItemSnapshot
}

type AsteroidSnapshot struct {
	ID        shared.EntityID
	Position  hexgrid.Vec2
	Remaining float64
}

type AsteroidFieldSnapshot struct {
	Sector    hexgrid.Coord
	Material  string
	Asteroids []AsteroidSnapshot
}

type ConstructionSiteSnapshot struct {
	ID           shared.EntityID
	Sector       hexgrid.Coord
	Progress     float64
	Contributors []shared.EntityID
}

func snapshotInventory(inv *inventory.Inventory) []InventoryItemSnapshot {
	if inv == nil {
		return nil
	}
	items := inv.Snapshot()
	out := make([]InventoryItemSnapshot, 0, len(items))
	for id, stock := range items {
		out = append(out, InventoryItemSnapshot{
			ItemID:          id,
			Current:         stock.Current,
			PlannedIncoming: stock.PlannedIncoming,
			PlannedOutgoing: stock.PlannedOutgoing,
		})
	}
	return out
}

// Snapshot builds a read-only copy of all engine state. Safe to call
// concurrently with Tick; the store writes it between ticks.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := Snapshot{TakenAt: e.nowTimestamp()}

	for _, s := range e.ships {
		ss := ShipSnapshot{
			ID:           s.ID,
			ConfigID:     s.ConfigID,
			Sector:       s.Sector,
			Position:     s.Position,
			Rotation:     s.Rotation,
			BehaviorName: s.Behavior.Name,
			Inventory:    snapshotInventory(s.Inventory),
		}
		if active := s.Tasks.Active(); active != nil {
			ss.ActiveTask = &TaskSnapshot{ID: active.ID, Kind: active.Kind.String(), Status: string(active.Status())}
		}
		for _, t := range s.Tasks.Pending() {
			ss.PendingTasks = append(ss.PendingTasks, TaskSnapshot{ID: t.ID, Kind: t.Kind.String(), Status: string(t.Status())})
		}
		snap.Ships = append(snap.Ships, ss)
	}

	for id, inv := range e.stationInventories {
		coord := e.stationSectors[id]
		snap.Stations = append(snap.Stations, StationSnapshot{ID: id, Sector: coord, Inventory: snapshotInventory(inv)})
	}

	for key, field := range e.asteroidFields {
		fs := AsteroidFieldSnapshot{Sector: key.Coord, Material: key.Material}
		for _, a := range field.Live() {
			fs.Asteroids = append(fs.Asteroids, AsteroidSnapshot{ID: a.ID, Position: a.LocalPos, Remaining: a.RemainingAfterReservations()})
		}
		snap.AsteroidFields = append(snap.AsteroidFields, fs)
	}

	for id, site := range e.constructionSites {
		snap.ConstructionSites = append(snap.ConstructionSites, ConstructionSiteSnapshot{
			ID:           id,
			Sector:       e.constructionSectors[id],
			Progress:     site.Progress(),
			Contributors: site.Contributors(),
		})
	}

	return snap
}
