package engine_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/application/behavior"
	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/sector"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/engine"
)

func newMockEngine(t *testing.T) (*engine.Engine, *shared.MockClock) {
	t.Helper()
	m := manifest.New()
	m.AddItem(manifest.Item{ID: "ore", Name: "Ore", Size: 1, MinPrice: 1, MaxPrice: 10})
	clock := shared.NewMockClock(time.Time{})
	e := engine.New(engine.Config{TickDelta: 1}, m, nil, clock)
	return e, clock
}

func TestEngine_TickIsNoopWhilePaused(t *testing.T) {
	e, _ := newMockEngine(t)
	e.AddSector(sector.NewSector(hexgrid.Coord{Q: 0, R: 0}, 1000))
	s := ship.New(shared.EntityID("ship-1"), "scout", hexgrid.Coord{Q: 0, R: 0}, 10)
	s.Behavior.Name = "AutoTrade"
	e.AddShip(s)

	called := false
	e.RegisterBehavior("AutoTrade", func(e *engine.Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
		called = true
		return behavior.Plan{}, false
	})

	require.Equal(t, engine.Paused, e.State())
	e.Tick()
	assert.False(t, called, "behaviors must not run while the engine is paused")
}

func TestEngine_BehaviorSelectionCreatesAndPromotesATask(t *testing.T) {
	e, _ := newMockEngine(t)
	e.AddSector(sector.NewSector(hexgrid.Coord{Q: 0, R: 0}, 1000))
	s := ship.New(shared.EntityID("ship-1"), "scout", hexgrid.Coord{Q: 0, R: 0}, 10)
	s.Behavior.Name = "Patrol"
	e.AddShip(s)

	e.RegisterBehavior("Patrol", func(e *engine.Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
		return behavior.Plan{Steps: []behavior.PlanStep{
			{Kind: "AwaitingSignal", Params: map[string]any{}},
		}}, true
	})

	e.SetState(engine.Running)
	e.Tick()

	active := s.Tasks.Active()
	require.NotNil(t, active, "the planned AwaitingSignal task should be promoted the same tick it is queued")
	assert.Equal(t, "AwaitingSignal", active.Kind.String())
	assert.Equal(t, shared.LifecycleActive, active.Status())
}

func TestEngine_AwaitingSignalOnlyAdvancesViaResolve(t *testing.T) {
	e, _ := newMockEngine(t)
	e.AddSector(sector.NewSector(hexgrid.Coord{Q: 0, R: 0}, 1000))
	s := ship.New(shared.EntityID("ship-1"), "scout", hexgrid.Coord{Q: 0, R: 0}, 10)
	s.Behavior.Name = "Patrol"
	e.AddShip(s)
	e.RegisterBehavior("Patrol", func(e *engine.Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
		return behavior.Plan{Steps: []behavior.PlanStep{{Kind: "AwaitingSignal"}}}, true
	})

	e.SetState(engine.Running)
	e.Tick()
	require.NotNil(t, s.Tasks.Active())

	// Several more ticks must not complete the task on their own.
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	active := s.Tasks.Active()
	require.NotNil(t, active, "AwaitingSignal must not self-complete")
	assert.Equal(t, shared.LifecycleActive, active.Status())

	require.NoError(t, e.ResolveAwaitingSignal(s.ID))
	assert.Nil(t, s.Tasks.Active(), "ResolveAwaitingSignal should finalize the task")
}

func TestEngine_ResolveAwaitingSignalRejectsWrongKind(t *testing.T) {
	e, _ := newMockEngine(t)
	s := ship.New(shared.EntityID("ship-1"), "scout", hexgrid.Coord{Q: 0, R: 0}, 10)
	e.AddShip(s)
	err := e.ResolveAwaitingSignal(s.ID)
	assert.Error(t, err, "a ship with no active AwaitingSignal task cannot be resolved")
}

func TestEngine_AsteroidFieldDriftsOutAndRespawns(t *testing.T) {
	e, clock := newMockEngine(t)
	coord := hexgrid.Coord{Q: 0, R: 0}
	e.AddSector(sector.NewSector(coord, 1000))

	rng := rand.New(rand.NewSource(1))
	field := asteroid.NewField("ore", 1000, 1, rng)
	n := 0
	field.SpawnInitial(0, "ore", hexgrid.Vec2{}, 10, 10, func() shared.EntityID {
		n++
		return shared.EntityID("asteroid-1")
	})
	e.AddAsteroidField(coord, "ore", field, hexgrid.Vec2{}, 10)

	live, _ := field.Count()
	require.Equal(t, 1, live)

	a, _, ok := e.Asteroid("asteroid-1")
	require.True(t, ok)
	a.DespawnAt = shared.Timestamp(0)

	e.SetState(engine.Running)
	e.Tick()

	_, _, ok = e.Asteroid("asteroid-1")
	assert.False(t, ok, "an asteroid past its despawn time should drift out of the live set")

	clock.Advance(2 * time.Hour)
	e.Tick()
	live, respawning := field.Count()
	assert.Equal(t, 1, live+respawning, "a drifted-out asteroid eventually respawns, keeping the field count stable")
}

func TestEngine_SnapshotReflectsShipsStationsAndConstructionSites(t *testing.T) {
	e, _ := newMockEngine(t)
	coord := hexgrid.Coord{Q: 1, R: -1}
	e.AddSector(sector.NewSector(coord, 1000))
	e.AddStation(shared.EntityID("station-1"), coord, 50, 1)

	s := ship.New(shared.EntityID("ship-1"), "scout", coord, 10)
	require.NoError(t, s.Inventory.ReserveIncoming(e.Manifest, "ore", 3))
	s.Inventory.CompleteIncoming("ore", 3)
	e.AddShip(s)

	snap := e.Snapshot()
	require.Len(t, snap.Ships, 1)
	assert.Equal(t, shared.EntityID("ship-1"), snap.Ships[0].ID)
	require.Len(t, snap.Ships[0].Inventory, 1)
	assert.Equal(t, 3, snap.Ships[0].Inventory[0].Current)

	require.Len(t, snap.Stations, 1)
	assert.Equal(t, coord, snap.Stations[0].Sector)
}

func TestEngine_DrainEventsClearsTheBuffer(t *testing.T) {
	e, _ := newMockEngine(t)
	s := ship.New(shared.EntityID("ship-1"), "scout", hexgrid.Coord{Q: 0, R: 0}, 10)
	e.AddShip(s)
	s.Behavior.Name = "Patrol"
	e.RegisterBehavior("Patrol", func(e *engine.Engine, s *ship.Ship, now shared.Timestamp) (behavior.Plan, bool) {
		return behavior.Plan{Steps: []behavior.PlanStep{{Kind: "AwaitingSignal"}}}, true
	})
	e.AddSector(sector.NewSector(hexgrid.Coord{Q: 0, R: 0}, 1000))
	e.SetState(engine.Running)
	e.Tick()

	events := e.DrainEvents()
	assert.NotEmpty(t, events, "promoting a task should emit a TaskStarted event")
	assert.Empty(t, e.DrainEvents(), "a second drain with no intervening tick returns nothing")
}
