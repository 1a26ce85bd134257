package runners

import (
	"math"

	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// StartHarvestGas arms next_update = now + 1s, the same cadence mining
// uses, and copies the planned "reserved" param into the task state
// RunHarvestGas draws down.
func StartHarvestGas(t *task.Task, now shared.Timestamp) {
	t.SetState("next_update", now.Plus(miningUpdateInterval))
	if v, ok := t.Param("reserved"); ok {
		t.SetState("reserved", v)
	}
}

// RunHarvestGas mirrors RunMineAsteroid's update cadence against a gas
// giant's resource list; the harvested material is the behavior's
// configured gas, read from the task's "gas" param. On completion,
// calls the gas giant's interaction queue Finish. Cancelable while
// active (handled by the caller's abort path, which calls
// RevertHarvestGas).
func RunHarvestGas(w World, s *ship.Ship, t *task.Task, now shared.Timestamp) Result {
	giantIDVal, _ := t.Param("target")
	giantID, _ := giantIDVal.(shared.EntityID)
	gasVal, _ := t.Param("gas")
	gas, _ := gasVal.(string)

	nextUpdateVal, _ := t.State("next_update")
	nextUpdate, _ := nextUpdateVal.(shared.Timestamp)
	if now.HasNotPassed(nextUpdate) {
		return Ongoing
	}

	cfg := shipConfig(w, s)
	rate := cfg.harvestingRate(w, s)
	freeSpace := s.Inventory.FreeSpaceFor(w.Manifest, gas)
	reservedVal, _ := t.State("reserved")
	reserved, _ := reservedVal.(float64)

	amount := math.Min(rate, math.Min(float64(freeSpace), reserved))
	if amount < 0 {
		amount = 0
	}
	reserved -= amount
	t.SetState("reserved", reserved)
	s.Inventory.CompleteIncoming(gas, int(amount))
	t.SetState("next_update", now.Plus(miningUpdateInterval))

	done := reserved <= 0 || s.Inventory.FreeSpaceFor(w.Manifest, gas) <= 0
	if done {
		if q, ok := w.Queue(giantID); ok {
			q.Finish()
		}
		return Completed
	}
	return Ongoing
}

// RevertHarvestGas releases the interaction-queue slot on
// cancel-while-active. The task's remaining "reserved" amount lives only
// in the task's own state, so nothing else is reverted.
func RevertHarvestGas(w World, t *task.Task) {
	giantIDVal, _ := t.Param("target")
	giantID, _ := giantIDVal.(shared.EntityID)
	if q, ok := w.Queue(giantID); ok {
		q.Finish()
	}
}
