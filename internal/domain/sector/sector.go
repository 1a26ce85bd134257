// Package sector models the static hex-sector graph: sectors, the gate
// pairs that connect them, and the per-sector resident sets the rest of
// the simulation queries (ships, stations, asteroid fields).
package sector

import (
	"fmt"
	"sort"
	"sync"

	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
)

// Feature flags a sector can carry, queried by the BFS feature search in
// package pathfinding.
type Feature string

const (
	FeatureAsteroidField Feature = "asteroid_field"
	FeatureGasCloud      Feature = "gas_cloud"
	FeatureStation       Feature = "station"
	FeatureShipyard      Feature = "shipyard"
)

// Gate is one endpoint of a GatePair: the sector it sits in and the local
// position ships align to before using it.
type Gate struct {
	SectorCoord hexgrid.Coord
	LocalPos    hexgrid.Vec2
}

// GatePair connects two sectors bidirectionally. Ships traverse it via
// the UseGate task, which moves them along the cubic-Bezier curve built
// from the two gates and the control points.
type GatePair struct {
	ID        string
	A, B      Gate
	ControlA  hexgrid.Vec2 // cubic-Bezier control point near A
	ControlB  hexgrid.Vec2 // cubic-Bezier control point near B
}

// Other returns the gate on the far side of this pair from the given
// sector coordinate.
func (gp GatePair) Other(from hexgrid.Coord) (Gate, error) {
	switch from {
	case gp.A.SectorCoord:
		return gp.B, nil
	case gp.B.SectorCoord:
		return gp.A, nil
	default:
		return Gate{}, fmt.Errorf("sector: gate pair %s does not touch sector %s", gp.ID, from)
	}
}

// Sector is one hex cell of the world graph: a fixed coordinate, its
// world-space center, the gates leading out of it, and the resident
// entities currently inside it.
type Sector struct {
	Coord    hexgrid.Coord
	Size     float64 // circumradius, shared with hexgrid.Boundary/WorldCenter
	features map[Feature]bool
	gates    []string // GatePair IDs touching this sector

	mu     sync.RWMutex
	ships  map[shared.EntityID]struct{}
	stations map[shared.EntityID]struct{}
}

// NewSector constructs an empty sector at coord with the given size.
func NewSector(coord hexgrid.Coord, size float64) *Sector {
	return &Sector{
		Coord:    coord,
		Size:     size,
		features: make(map[Feature]bool),
		ships:    make(map[shared.EntityID]struct{}),
		stations: make(map[shared.EntityID]struct{}),
	}
}

func (s *Sector) WorldCenter() (x, y float64) { return s.Coord.WorldCenter(s.Size) }

func (s *Sector) SetFeature(f Feature, present bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if present {
		s.features[f] = true
	} else {
		delete(s.features, f)
	}
}

func (s *Sector) HasFeature(f Feature) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.features[f]
}

func (s *Sector) AddGate(gateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gates = append(s.gates, gateID)
}

func (s *Sector) GateIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.gates))
	copy(out, s.gates)
	return out
}

func (s *Sector) AddShip(id shared.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ships[id] = struct{}{}
}

func (s *Sector) RemoveShip(id shared.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ships, id)
}

func (s *Sector) Ships() []shared.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.EntityID, 0, len(s.ships))
	for id := range s.ships {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Sector) AddStation(id shared.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations[id] = struct{}{}
}

func (s *Sector) Stations() []shared.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.EntityID, 0, len(s.stations))
	for id := range s.stations {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Graph is the full static sector topology: every sector keyed by
// coordinate, plus the gate pairs that connect them. Built once at
// startup from the world manifest and never mutated at runtime except
// for the resident sets each Sector tracks itself.
type Graph struct {
	sectors   map[hexgrid.Coord]*Sector
	gatePairs map[string]*GatePair
}

func NewGraph() *Graph {
	return &Graph{
		sectors:   make(map[hexgrid.Coord]*Sector),
		gatePairs: make(map[string]*GatePair),
	}
}

func (g *Graph) AddSector(s *Sector) { g.sectors[s.Coord] = s }

func (g *Graph) Sector(c hexgrid.Coord) (*Sector, bool) {
	s, ok := g.sectors[c]
	return s, ok
}

func (g *Graph) AllSectors() []*Sector {
	out := make([]*Sector, 0, len(g.sectors))
	for _, s := range g.sectors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Q != out[j].Coord.Q {
			return out[i].Coord.Q < out[j].Coord.Q
		}
		return out[i].Coord.R < out[j].Coord.R
	})
	return out
}

// AddGatePair registers gp and wires it into both endpoint sectors'
// gate lists.
func (g *Graph) AddGatePair(gp *GatePair) error {
	a, ok := g.sectors[gp.A.SectorCoord]
	if !ok {
		return fmt.Errorf("sector: gate pair %s references unknown sector %s", gp.ID, gp.A.SectorCoord)
	}
	b, ok := g.sectors[gp.B.SectorCoord]
	if !ok {
		return fmt.Errorf("sector: gate pair %s references unknown sector %s", gp.ID, gp.B.SectorCoord)
	}
	g.gatePairs[gp.ID] = gp
	a.AddGate(gp.ID)
	b.AddGate(gp.ID)
	return nil
}

func (g *Graph) GatePair(id string) (*GatePair, bool) {
	gp, ok := g.gatePairs[id]
	return gp, ok
}

// Neighbors returns the sector coordinates directly reachable from c via
// a single gate pair.
func (g *Graph) Neighbors(c hexgrid.Coord) []hexgrid.Coord {
	s, ok := g.sectors[c]
	if !ok {
		return nil
	}
	var out []hexgrid.Coord
	for _, gid := range s.GateIDs() {
		gp := g.gatePairs[gid]
		other, err := gp.Other(c)
		if err == nil {
			out = append(out, other.SectorCoord)
		}
	}
	return out
}
