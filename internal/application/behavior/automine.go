package behavior

import (
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
)

// MineState is AutoMine's two-state cycle.
type MineState string

const (
	MineStateMining  MineState = "Mining"
	MineStateTrading MineState = "Trading"
)

// AsteroidCandidate is one asteroid a selector is evaluating for the
// current sector's "closest matching, not about to drift out" search.
type AsteroidCandidate struct {
	ID                       shared.EntityID
	LocalPos                 hexgrid.Vec2
	DespawnAt                shared.Timestamp
	Material                 string
	RemainingAfterReservations float64
}

// notAboutToLeaveWindow is the 15s lookahead required before selecting
// an asteroid: its despawn timestamp must be more than 15s out.
const notAboutToLeaveWindow = shared.Duration(15000)

// SelectLocalAsteroid picks the closest in-sector asteroid matching
// oreItem that won't drift out within 15s and still has ore free to
// reserve. shipPos is used only to rank by distance.
func SelectLocalAsteroid(now shared.Timestamp, shipPos hexgrid.Vec2, oreItem string, candidates []AsteroidCandidate) (best AsteroidCandidate, ok bool) {
	bestDist := -1.0
	cutoff := now.Plus(notAboutToLeaveWindow)
	for _, c := range candidates {
		if c.Material != oreItem || c.RemainingAfterReservations <= 0 {
			continue
		}
		if c.DespawnAt <= cutoff {
			continue
		}
		d := c.LocalPos.Sub(shipPos).Length()
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = c
			ok = true
		}
	}
	return best, ok
}

// SectorHealth is a remote sector's asteroid-availability signal for
// the weighted breadth-search fallback used once the local sector is
// tapped out.
type SectorHealth struct {
	Coord       hexgrid.Coord
	Distance    int
	Spawned     int
	Respawning  int
}

// Weight scores a sector by health: plain distance when health > 0.4,
// else a penalty that grows with both distance and scarcity.
func (s SectorHealth) Weight() float64 {
	total := s.Spawned + s.Respawning
	health := 0.0
	if total > 0 {
		health = float64(s.Spawned) / float64(total)
	}
	if health > 0.4 {
		return float64(s.Distance)
	}
	d := float64(s.Distance) * 10
	return d*d + (1-health*health)*100
}

// SelectRemoteSector picks the lowest-weight sector from candidates, or
// ok=false if none are offered.
func SelectRemoteSector(candidates []SectorHealth) (best SectorHealth, ok bool) {
	bestWeight := 0.0
	for i, c := range candidates {
		w := c.Weight()
		if i == 0 || w < bestWeight {
			bestWeight = w
			best = c
			ok = true
		}
	}
	return best, ok
}

// FlipMineState applies the Mining<->Trading transition: Mining flips
// to Trading when no free space remains for oreItem; Trading flips back
// to Mining once the ship's inventory is empty.
func FlipMineState(current MineState, freeSpaceForOre int, inventoryEmpty bool) MineState {
	switch current {
	case MineStateMining:
		if freeSpaceForOre <= 0 {
			return MineStateTrading
		}
	case MineStateTrading:
		if inventoryEmpty {
			return MineStateMining
		}
	}
	return current
}

// PlanMineLocal builds [MoveToEntity(asteroid,stop,0), MineAsteroid(asteroid,reserved)].
func PlanMineLocal(asteroidID shared.EntityID, reserved float64) Plan {
	return Plan{Steps: []PlanStep{
		moveTo(asteroidID, true, 0),
		{Kind: "MineAsteroid", Params: map[string]any{"target": asteroidID, "reserved": reserved}},
	}}
}
