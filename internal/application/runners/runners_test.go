package runners_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/application/runners"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

func testManifest() *manifest.Manifest {
	m := manifest.New()
	m.AddShipConfig(manifest.ShipConfig{
		ID:              "hauler",
		CargoCapacity:   100,
		MaxForwardAccel: 50,
		MaxForwardSpeed: 100,
		MaxAngularAccel: 10,
		MaxAngularSpeed: 5,
		MaxDeceleration: 50,
		MiningRate:      2,
		HarvestingRate:  2,
		BuildPower:      1,
	})
	m.AddItem(manifest.Item{ID: "ore", Size: 1, MinPrice: 5, MaxPrice: 20})
	return m
}

func testWorld(m *manifest.Manifest, locate func(shared.EntityID) (hexgrid.Vec2, hexgrid.Coord, bool)) runners.World {
	return runners.World{
		Manifest: m,
		Locate:   locate,
	}
}

func TestRunMoveToEntity_FlybyCompletesNearTarget(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	s.Position = hexgrid.Vec2{X: 0, Y: 0}

	target := hexgrid.Vec2{X: 5, Y: 0}
	w := testWorld(m, func(id shared.EntityID) (hexgrid.Vec2, hexgrid.Coord, bool) {
		return target, hexgrid.Coord{}, true
	})

	tk := task.New("t1", task.KindMoveToEntity, map[string]any{
		"target":           shared.EntityID("station-1"),
		"stop_at_target":   false,
		"desired_distance": 0.0,
	}, func() shared.Timestamp { return 0 })

	result := runners.RunMoveToEntity(w, s, tk, 0.1)
	assert.Equal(t, runners.Completed, result)
}

func TestRunMoveToEntity_AbortsWhenTargetMissing(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	w := testWorld(m, func(id shared.EntityID) (hexgrid.Vec2, hexgrid.Coord, bool) {
		return hexgrid.Vec2{}, hexgrid.Coord{}, false
	})

	tk := task.New("t1", task.KindMoveToEntity, map[string]any{"target": shared.EntityID("gone")}, func() shared.Timestamp { return 0 })

	result := runners.RunMoveToEntity(w, s, tk, 0.1)
	assert.Equal(t, runners.Aborted, result)
}

func TestRunMoveToEntity_TurnsTowardTarget(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	s.Position = hexgrid.Vec2{X: 0, Y: 0}
	s.Rotation = 0

	target := hexgrid.Vec2{X: 0, Y: 100} // straight ahead given rotation+pi/2 heading convention
	w := testWorld(m, func(id shared.EntityID) (hexgrid.Vec2, hexgrid.Coord, bool) {
		return target, hexgrid.Coord{}, true
	})

	tk := task.New("t1", task.KindMoveToEntity, map[string]any{
		"target":           shared.EntityID("station-1"),
		"stop_at_target":   false,
		"desired_distance": 0.0,
	}, func() shared.Timestamp { return 0 })

	runners.RunMoveToEntity(w, s, tk, 0.1)
	// Target directly ahead means angle_err starts at ~0; a single tick's
	// bang-bang correction should stay within one tick's max angular
	// acceleration (10 rad/s^2 * 0.1s).
	assert.LessOrEqual(t, math.Abs(s.AngularVel), 1.0+1e-6)
}

func TestRunExchangeWares_WaitsThenTransfers(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	station := inventory.New(1000)
	station.CompleteIncoming("ore", 50)
	require.NoError(t, station.ReserveOutgoing("ore", 10))

	w := runners.World{
		Manifest: m,
		Inventory: func(id shared.EntityID) (*inventory.Inventory, bool) {
			return station, true
		},
	}

	tk := task.New("t1", task.KindExchangeWares, map[string]any{
		"target":    shared.EntityID("station-1"),
		"item_id":   "ore",
		"amount":    10,
		"direction": "buy",
	}, func() shared.Timestamp { return 0 })
	runners.StartExchangeWares(tk, 0)

	result := runners.RunExchangeWares(w, s, tk, 1000)
	assert.Equal(t, runners.Ongoing, result)

	result = runners.RunExchangeWares(w, s, tk, 2000)
	assert.Equal(t, runners.Completed, result)
	assert.Equal(t, 10, s.Inventory.Stock("ore").Current)
	assert.Equal(t, 0, station.Stock("ore").PlannedOutgoing)
}

func TestRunExchangeWares_RevertRestoresNoTransfer(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	s.Inventory.CompleteIncoming("ore", 10)
	require.NoError(t, s.Inventory.ReserveOutgoing("ore", 10))

	station := inventory.New(1000)
	require.NoError(t, station.ReserveIncoming(m, "ore", 10))

	w := runners.World{
		Manifest: m,
		Inventory: func(id shared.EntityID) (*inventory.Inventory, bool) {
			return station, true
		},
	}

	tk := task.New("t1", task.KindExchangeWares, map[string]any{
		"target":    shared.EntityID("station-1"),
		"item_id":   "ore",
		"amount":    10,
		"direction": "sell",
	}, func() shared.Timestamp { return 0 })

	runners.RevertExchangeWares(w, s, tk)

	assert.Equal(t, 0, s.Inventory.Stock("ore").PlannedOutgoing)
	assert.Equal(t, 0, station.Stock("ore").PlannedIncoming)
	// no transfer happened: ship still holds its original 10 units.
	assert.Equal(t, 10, s.Inventory.Stock("ore").Current)
}

func TestClampHelpersViaMoveToEntity_DoesNotOvershootMaxSpeed(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	target := hexgrid.Vec2{X: 0, Y: 100000}
	w := testWorld(m, func(id shared.EntityID) (hexgrid.Vec2, hexgrid.Coord, bool) {
		return target, hexgrid.Coord{}, true
	})
	tk := task.New("t1", task.KindMoveToEntity, map[string]any{
		"target":           shared.EntityID("far"),
		"stop_at_target":   false,
		"desired_distance": 0.0,
	}, func() shared.Timestamp { return 0 })

	for i := 0; i < 50; i++ {
		runners.RunMoveToEntity(w, s, tk, 0.1)
	}
	assert.LessOrEqual(t, math.Abs(s.ForwardVel), 100.0+1e-9)
}
