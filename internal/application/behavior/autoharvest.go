package behavior

import "github.com/duskline/hexsim/internal/domain/shared"

// PlanHarvestLocal mirrors PlanMineLocal but for a gas giant target,
// inserting RequestAccess + HarvestGas in place of MineAsteroid.
func PlanHarvestLocal(giantID shared.EntityID, gas string, reserved float64) Plan {
	return Plan{Steps: []PlanStep{
		moveTo(giantID, true, dockDistance),
		requestAccess(giantID),
		{Kind: "HarvestGas", Params: map[string]any{"target": giantID, "gas": gas, "reserved": reserved}},
	}}
}
