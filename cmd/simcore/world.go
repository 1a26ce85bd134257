package main

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/construction"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/sector"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/engine"
)

// worldSeed is the on-disk shape of a starting world: the sectors,
// stations, ships, asteroid fields, and construction sites to load before the first
// tick. It is a CLI-only convenience, not part of the engine's public
// surface — embedding hosts add entities directly via the Engine's
// Add* methods.
type worldSeed struct {
	Sectors []struct {
		Q    int      `yaml:"q"`
		R    int      `yaml:"r"`
		Size float64  `yaml:"size"`
	} `yaml:"sectors"`

	// Gate pairs are intentionally not part of the seed format: the
	// bezier control-point geometry UseGate moves ships along is better
	// authored by a level tool than hand-written YAML. A host wanting
	// cross-sector travel adds them via Engine.AddGatePair directly.

	Stations []struct {
		ID            string `yaml:"id"`
		Q             int    `yaml:"q"`
		R             int    `yaml:"r"`
		CargoCapacity int    `yaml:"cargo_capacity"`
		MaxConcurrent int    `yaml:"max_concurrent"`
	} `yaml:"stations"`

	Ships []struct {
		ConfigID      string `yaml:"config_id"`
		Q             int    `yaml:"q"`
		R             int    `yaml:"r"`
		CargoCapacity int    `yaml:"cargo_capacity"`
		Behavior      string `yaml:"behavior"`
	} `yaml:"ships"`

	AsteroidFields []struct {
		Q           int     `yaml:"q"`
		R           int     `yaml:"r"`
		Material    string  `yaml:"material"`
		Count       int     `yaml:"count"`
		OreMin      float64 `yaml:"ore_min"`
		OreMax      float64 `yaml:"ore_max"`
		AvgVelX     float64 `yaml:"avg_vel_x"`
		AvgVelY     float64 `yaml:"avg_vel_y"`
	} `yaml:"asteroid_fields"`

	ConstructionSites []struct {
		ID   string `yaml:"id"`
		Q    int    `yaml:"q"`
		R    int    `yaml:"r"`
	} `yaml:"construction_sites"`
}

// loadWorldSeed reads path (if non-empty) and populates e with its
// sectors, stations, ships, asteroid fields, and construction sites.
// An empty path is valid: e starts with an empty world, ready for an
// embedding host to add entities at runtime.
func loadWorldSeed(path string, e *engine.Engine, now shared.Timestamp) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read world seed %s: %w", path, err)
	}
	var seed worldSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse world seed %s: %w", path, err)
	}

	for _, s := range seed.Sectors {
		size := s.Size
		if size == 0 {
			size = 1000
		}
		e.AddSector(sector.NewSector(hexgrid.Coord{Q: s.Q, R: s.R}, size))
	}

	for _, st := range seed.Stations {
		e.AddStation(shared.EntityID(st.ID), hexgrid.Coord{Q: st.Q, R: st.R}, st.CargoCapacity, st.MaxConcurrent)
	}

	for _, sh := range seed.Ships {
		coord := hexgrid.Coord{Q: sh.Q, R: sh.R}
		s := ship.New(shared.NewEntityID("ship"), sh.ConfigID, coord, sh.CargoCapacity)
		s.Behavior.Name = sh.Behavior
		e.AddShip(s)
	}

	rng := rand.New(rand.NewSource(int64(now)))
	for _, af := range seed.AsteroidFields {
		coord := hexgrid.Coord{Q: af.Q, R: af.R}
		sec, ok := e.Sectors.Sector(coord)
		size := 1000.0
		if ok {
			size = sec.Size
		}
		field := asteroid.NewField(af.Material, size, af.Count, rng)
		avgVel := hexgrid.Vec2{X: af.AvgVelX, Y: af.AvgVelY}
		field.SpawnInitial(now, af.Material, avgVel, af.OreMin, af.OreMax, func() shared.EntityID {
			return shared.NewEntityID("asteroid")
		})
		e.AddAsteroidField(coord, af.Material, field, avgVel, af.OreMax)
	}

	for _, cs := range seed.ConstructionSites {
		coord := hexgrid.Coord{Q: cs.Q, R: cs.R}
		e.AddConstructionSite(shared.EntityID(cs.ID), coord, construction.NewSite(shared.EntityID(cs.ID)))
	}

	return nil
}
