package runners

import (
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// StartConstruct registers the ship with the construction site,
// contributing its build power as soon as the task starts.
func StartConstruct(w World, s *ship.Ship, t *task.Task) {
	siteIDVal, _ := t.Param("target")
	siteID, _ := siteIDVal.(shared.EntityID)
	site, ok := w.ConstructionSite(siteID)
	if !ok {
		return
	}
	buildPower := 0.0
	if c, err := w.Manifest.ShipConfig(s.ConfigID); err == nil {
		buildPower = c.BuildPower
	}
	site.Register(s.ID, buildPower)
}

// RunConstruct is a no-op: the construction site accumulates progress
// autonomously (driven by the engine's construction-accumulation
// phase). The task completes only when the site signals completion,
// which is surfaced to the core as an external Completed event and
// handled outside this runner.
func RunConstruct() Result {
	return Ongoing
}

// RevertConstruct deregisters the ship, subtracting its build power, on
// cancel/abort.
func RevertConstruct(w World, s *ship.Ship, t *task.Task) {
	siteIDVal, _ := t.Param("target")
	siteID, _ := siteIDVal.(shared.EntityID)
	site, ok := w.ConstructionSite(siteID)
	if !ok {
		return
	}
	site.Deregister(s.ID)
}
