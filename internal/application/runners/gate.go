package runners

import (
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/sector"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/domain/task"
)

// smoothStep is the standard 3t²-2t³ ease curve used to blend gate
// travel into and out of the bezier warp path.
func smoothStep(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func curvePoint(gp *sector.GatePair, fromCoord hexgrid.Coord, t float64) hexgrid.Vec2 {
	var p0, p1, p2, p3 hexgrid.Vec2
	if fromCoord == gp.A.SectorCoord {
		p0, p1, p2, p3 = gp.A.LocalPos, gp.ControlA, gp.ControlB, gp.B.LocalPos
	} else {
		p0, p1, p2, p3 = gp.B.LocalPos, gp.ControlB, gp.ControlA, gp.A.LocalPos
	}
	u := 1 - t
	a := p0.Scale(u * u * u)
	b := p1.Scale(3 * u * u * t)
	c := p2.Scale(3 * u * t * t)
	d := p3.Scale(t * t * t)
	return a.Add(b).Add(c).Add(d)
}

// StartUseGate removes the ship from its origin sector's resident set.
func StartUseGate(g *sector.Graph, s *ship.Ship) {
	if origin, ok := g.Sector(s.Sector); ok {
		origin.RemoveShip(s.ID)
	}
	s.Tasks.Active().SetState("origin_position", s.Position)
	s.Tasks.Active().SetState("progress", 0.0)
}

// RunUseGate drives the warp-in/curve-travel algorithm: ease into the
// bezier curve between the two gates, then ride it out to the exit
// sector. UseGate cannot be canceled or aborted; a missing gate pair is a
// configuration error the caller should have prevented at creation
// time, so this runner simply holds position rather than aborting.
func RunUseGate(graph *sector.Graph, s *ship.Ship, t *task.Task, dt float64) Result {
	gpIDVal, _ := t.Param("gate_pair_id")
	gpID, _ := gpIDVal.(string)
	gp, ok := graph.GatePair(gpID)
	if !ok {
		return Ongoing
	}

	progressVal, _ := t.State("progress")
	progress, _ := progressVal.(float64)
	progress += dt / gateTravelSeconds
	t.SetState("progress", progress)

	if progress < gateBlend {
		originVal, _ := t.State("origin_position")
		origin, _ := originVal.(hexgrid.Vec2)
		curveStart := curvePoint(gp, s.Sector, smoothStep(gateBlend))
		ratio := progress / gateBlend
		ratio = ratio * ratio
		s.Position = origin.Add(curveStart.Sub(origin).Scale(ratio))
	} else {
		s.Position = curvePoint(gp, s.Sector, smoothStep(progress))
	}

	if progress >= 1.0 {
		exitVal, _ := t.Param("exit_sector")
		exitCoord, _ := exitVal.(hexgrid.Coord)
		s.Sector = exitCoord
		if dest, ok := graph.Sector(exitCoord); ok {
			dest.AddShip(s.ID)
		}
		s.ForwardVel /= 2
		return Completed
	}
	return Ongoing
}
