package asteroid_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
)

func idGen() func() shared.EntityID {
	n := 0
	return func() shared.EntityID {
		n++
		return shared.EntityID(shared.NewEntityID("asteroid"))
	}
}

func TestField_SpawnInitialMaintainsCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := asteroid.NewField("iron", 500, 12, rng)

	f.SpawnInitial(0, "iron", hexgrid.Vec2{X: 10, Y: 0}, 50, 100, idGen())

	live, respawning := f.Count()
	assert.Equal(t, 12, live)
	assert.Equal(t, 0, respawning)
	assert.Equal(t, 12, live+respawning)
}

func TestField_DriftOutMovesToRespawnHeap(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	f := asteroid.NewField("iron", 500, 3, rng)
	f.SpawnInitial(0, "iron", hexgrid.Vec2{X: 10, Y: 0}, 50, 100, idGen())

	// Advance well past every asteroid's computed despawn timestamp.
	despawned := f.TickDriftOut(shared.Timestamp(1 << 40))

	live, respawning := f.Count()
	assert.Equal(t, 0, live)
	assert.Equal(t, 3, respawning)
	assert.Equal(t, 3, live+respawning)
	assert.Len(t, despawned, 3)
}

func TestField_RespawnReturnsToLiveSetAfterDelay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := asteroid.NewField("iron", 500, 2, rng)
	f.SpawnInitial(0, "iron", hexgrid.Vec2{X: 10, Y: 0}, 50, 100, idGen())
	f.TickDriftOut(shared.Timestamp(1 << 40))

	_, respawning := f.Count()
	require.Equal(t, 2, respawning)

	// Too early: each record falls due RespawnTime after its asteroid's
	// own (positive) despawn timestamp, so nothing is due at RespawnTime.
	none := f.TickRespawn(shared.Timestamp(asteroid.RespawnTime), 100, hexgrid.Vec2{X: 10, Y: 0})
	assert.Empty(t, none)

	// Far enough past respawnAt (despawn + RespawnTime): both return.
	respawned := f.TickRespawn(shared.Timestamp(1<<40)+shared.Timestamp(asteroid.RespawnTime)+1000, 100, hexgrid.Vec2{X: 10, Y: 0})
	assert.Len(t, respawned, 2)

	live, stillRespawning := f.Count()
	assert.Equal(t, 2, live)
	assert.Equal(t, 0, stillRespawning)
	for _, a := range respawned {
		assert.Equal(t, 100.0, a.Ore)
	}
}

func TestField_MinedDespawnSchedulesRespawn(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	f := asteroid.NewField("iron", 500, 1, rng)
	f.SpawnInitial(0, "iron", hexgrid.Vec2{X: 10, Y: 0}, 50, 100, idGen())

	live := f.Live()
	require.Len(t, live, 1)
	id := live[0].ID

	f.MinedDespawn(1000, id)

	liveCount, respawning := f.Count()
	assert.Equal(t, 0, liveCount)
	assert.Equal(t, 1, respawning)
}
