package runners_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskline/hexsim/internal/application/runners"
	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

func TestRunMineAsteroid_SkipsUntilNextUpdate(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	a := &asteroid.Asteroid{ID: "rock-1", Material: "ore", Ore: 10, OreMax: 10, Reserved: 10}
	field := asteroid.NewField("ore", 500, 1, nil)

	w := runners.World{
		Manifest: m,
		Asteroid: func(id shared.EntityID) (*asteroid.Asteroid, *asteroid.Field, bool) {
			return a, field, true
		},
	}

	tk := task.New("t1", task.KindMineAsteroid, map[string]any{"target": shared.EntityID("rock-1")}, func() shared.Timestamp { return 0 })
	runners.StartMineAsteroid(tk, 0)
	tk.SetState("reserved", 10.0)

	result := runners.RunMineAsteroid(w, s, tk, 500) // before next_update (1000)
	assert.Equal(t, runners.Ongoing, result)
	assert.Equal(t, 10.0, a.Ore) // unchanged
}

func TestRunMineAsteroid_MinesAtRateAndDepletesAsteroid(t *testing.T) {
	m := testManifest() // MiningRate = 2
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	a := &asteroid.Asteroid{ID: "rock-1", Material: "ore", Ore: 2, OreMax: 10, Reserved: 2}
	field := asteroid.NewField("ore", 500, 1, nil)

	fullyMinedCalled := false
	w := runners.World{
		Manifest: m,
		Asteroid: func(id shared.EntityID) (*asteroid.Asteroid, *asteroid.Field, bool) {
			return a, field, true
		},
		EmitAsteroidFullyMined: func(id shared.EntityID, despawnTimer shared.Timestamp) {
			fullyMinedCalled = true
		},
	}

	tk := task.New("t1", task.KindMineAsteroid, map[string]any{"target": shared.EntityID("rock-1")}, func() shared.Timestamp { return 0 })
	runners.StartMineAsteroid(tk, 0)
	tk.SetState("reserved", 2.0)

	result := runners.RunMineAsteroid(w, s, tk, 1000)

	assert.Equal(t, runners.Completed, result)
	assert.Equal(t, 0.0, a.Ore)
	assert.True(t, fullyMinedCalled)
	assert.Equal(t, 2, s.Inventory.Stock("ore").Current)
}

func TestRunMineAsteroid_AbortsWhenAsteroidVanished(t *testing.T) {
	m := testManifest()
	s := ship.New("ship-1", "hauler", hexgrid.Coord{}, 100)
	w := runners.World{
		Manifest: m,
		Asteroid: func(id shared.EntityID) (*asteroid.Asteroid, *asteroid.Field, bool) {
			return nil, nil, false
		},
	}
	tk := task.New("t1", task.KindMineAsteroid, map[string]any{"target": shared.EntityID("gone")}, func() shared.Timestamp { return 0 })

	result := runners.RunMineAsteroid(w, s, tk, 1000)
	assert.Equal(t, runners.Aborted, result)
}
