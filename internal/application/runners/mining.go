package runners

import (
	"math"

	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// miningUpdateInterval is the fixed 1s cadence shared by mining and
// gas harvesting.
const miningUpdateInterval = shared.Duration(1000)

// StartMineAsteroid arms next_update = now + 1s.
func StartMineAsteroid(t *task.Task, now shared.Timestamp) {
	t.SetState("next_update", now.Plus(miningUpdateInterval))
}

// RunMineAsteroid runs the per-second ore transfer: mine
// min(miner_rate, remaining_inventory_space, reserved_in_asteroid) ore
// of the asteroid's material, rescale its visual, and finish when the
// asteroid is exhausted or the ship is full. Aborts if the asteroid
// vanished mid-task.
func RunMineAsteroid(w World, s *ship.Ship, t *task.Task, now shared.Timestamp) Result {
	asteroidIDVal, _ := t.Param("target")
	asteroidID, _ := asteroidIDVal.(shared.EntityID)
	a, field, ok := w.Asteroid(asteroidID)
	if !ok {
		return Aborted
	}

	nextUpdateVal, _ := t.State("next_update")
	nextUpdate, _ := nextUpdateVal.(shared.Timestamp)
	if now.HasNotPassed(nextUpdate) {
		return Ongoing
	}

	cfg := shipConfig(w, s)
	minerRate := cfg.miningRate(w, s)
	freeSpace := s.Inventory.FreeSpaceFor(w.Manifest, a.Material)
	reservedVal, _ := t.State("reserved")
	reserved, _ := reservedVal.(float64)

	amount := math.Min(minerRate, math.Min(float64(freeSpace), reserved))
	if amount < 0 {
		amount = 0
	}

	a.Ore -= amount
	a.Reserved -= amount
	reserved -= amount
	t.SetState("reserved", reserved)
	if a.OreMax > 0 {
		a.Scale = lerpLocal(0.3, 1.5, a.Ore/a.OreMax)
	}
	s.Inventory.CompleteIncoming(a.Material, int(amount))

	t.SetState("next_update", now.Plus(miningUpdateInterval))

	if a.Ore <= 0 {
		if w.EmitAsteroidFullyMined != nil {
			w.EmitAsteroidFullyMined(asteroidID, now.Plus(asteroid.RespawnTime))
		}
		field.MinedDespawn(now, asteroidID)
		return Completed
	}
	if s.Inventory.FreeSpaceFor(w.Manifest, a.Material) <= 0 {
		return Completed
	}
	return Ongoing
}

// RevertMineAsteroid returns the reserved amount to the asteroid on
// cancel-while-queued.
func RevertMineAsteroid(w World, t *task.Task) {
	asteroidIDVal, _ := t.Param("target")
	asteroidID, _ := asteroidIDVal.(shared.EntityID)
	a, _, ok := w.Asteroid(asteroidID)
	if !ok {
		return
	}
	reservedVal, _ := t.State("reserved")
	reserved, _ := reservedVal.(float64)
	if reserved == 0 {
		reservedVal, _ = t.Param("reserved")
		reserved, _ = reservedVal.(float64)
	}
	a.Reserved -= reserved
}

func lerpLocal(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}

func (p shipPhysics) miningRate(w World, s *ship.Ship) float64 {
	cfg, err := w.Manifest.ShipConfig(s.ConfigID)
	if err != nil {
		return 0
	}
	return cfg.MiningRate
}

func (p shipPhysics) harvestingRate(w World, s *ship.Ship) float64 {
	cfg, err := w.Manifest.ShipConfig(s.ConfigID)
	if err != nil {
		return 0
	}
	return cfg.HarvestingRate
}
