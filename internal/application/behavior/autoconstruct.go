package behavior

import "github.com/duskline/hexsim/internal/domain/shared"

// PlanAutoConstruct builds the route-then-build plan for AutoConstruct:
// move to the nearest construction site (found with min_depth=0) and
// register for it.
func PlanAutoConstruct(siteID shared.EntityID, route []PlanStep) Plan {
	steps := append([]PlanStep{}, route...)
	steps = append(steps,
		moveTo(siteID, true, dockDistance),
		PlanStep{Kind: "Construct", Params: map[string]any{"target": siteID}},
	)
	return Plan{Steps: steps}
}
