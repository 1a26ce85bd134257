// Package engine implements the fixed-tick simulation pipeline:
// behavior selection -> task creation -> promotion -> task runners
// (parallel across ships) -> completion -> asteroid lifecycle -> orbit
// integration, executed in a fixed topological order every tick.
package engine

import (
	"math/rand"
	"sync"

	"github.com/duskline/hexsim/internal/application/common"
	"github.com/duskline/hexsim/internal/domain/asteroid"
	"github.com/duskline/hexsim/internal/domain/construction"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/interactionqueue"
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/orbit"
	"github.com/duskline/hexsim/internal/domain/sector"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
)

// RunState is the host-controlled tick gate: a host ticks the engine
// on a fixed delta while Running, and can pause/resume it at will.
type RunState int

const (
	Running RunState = iota
	Paused
)

// Config holds the tick-pipeline's runtime knobs.
type Config struct {
	TickDelta  float64 // seconds per tick
	StrictMode bool    // panic on missed-precondition violations instead of log+skip
}

// Event is a lifecycle/domain event the tick pipeline emits, forwarded
// to the event-stream hub and the logger.
type Event struct {
	Kind string
	Data map[string]any
}

// fieldKey addresses one material's asteroid field within a sector.
type fieldKey struct {
	Coord    hexgrid.Coord
	Material string
}

// fieldMetadata holds the per-field constants TickRespawn needs that
// asteroid.Field itself does not retain.
type fieldMetadata struct {
	AvgVelocity hexgrid.Vec2
	OreMax      float64
}

// orbitingBody pairs an orbit integrator with the sector it orbits and
// the entity id the event stream reports positions under.
type orbitingBody struct {
	ID     shared.EntityID
	Sector hexgrid.Coord
	Orbit  *orbit.ConstantOrbit
}

// gasGiant is a harvestable, non-depleting resource body: a fixed
// position plus the one gas item ships can pull from it. Unlike an
// asteroid field it carries no stock to exhaust, only an interaction
// queue limiting concurrent harvesters.
type gasGiant struct {
	Coord    hexgrid.Coord
	LocalPos hexgrid.Vec2
	Gas      string
}

// Engine owns the whole simulated world and advances it one tick at a
// time. All cross-ship coordination (interaction queues, asteroid
// fields, construction sites) lives here rather than on Ship so task
// runners can treat it as shared, mostly-read-only state.
type Engine struct {
	Config   Config
	Manifest *manifest.Manifest
	Sectors  *sector.Graph
	Logger   common.SimLogger
	Clock    shared.Clock

	mu                sync.RWMutex
	ships             map[shared.EntityID]*ship.Ship
	stationInventories map[shared.EntityID]*inventory.Inventory
	stationSectors    map[shared.EntityID]hexgrid.Coord
	interactionQs     map[shared.EntityID]*interactionqueue.Queue
	asteroidFields    map[fieldKey]*asteroid.Field
	asteroidIndex     map[shared.EntityID]fieldKey
	fieldMeta         map[fieldKey]fieldMetadata
	constructionSites   map[shared.EntityID]*construction.Site
	constructionSectors map[shared.EntityID]hexgrid.Coord
	gasGiants           map[shared.EntityID]gasGiant
	orbitingBodies      []*orbitingBody
	behaviors         map[string]BehaviorFn
	rng               *rand.Rand

	state  RunState
	events []Event
}

// New constructs an empty Engine ready for world setup (add-sector /
// add-gate-pair / add-station / add-ship commands).
func New(cfg Config, m *manifest.Manifest, logger common.SimLogger, clock shared.Clock) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Engine{
		Config:            cfg,
		Manifest:          m,
		Sectors:           sector.NewGraph(),
		Logger:            logger,
		Clock:             clock,
		ships:             make(map[shared.EntityID]*ship.Ship),
		stationInventories: make(map[shared.EntityID]*inventory.Inventory),
		stationSectors:    make(map[shared.EntityID]hexgrid.Coord),
		interactionQs:     make(map[shared.EntityID]*interactionqueue.Queue),
		asteroidFields:    make(map[fieldKey]*asteroid.Field),
		asteroidIndex:     make(map[shared.EntityID]fieldKey),
		fieldMeta:         make(map[fieldKey]fieldMetadata),
		constructionSites:   make(map[shared.EntityID]*construction.Site),
		constructionSectors: make(map[shared.EntityID]hexgrid.Coord),
		gasGiants:           make(map[shared.EntityID]gasGiant),
		behaviors:         make(map[string]BehaviorFn),
		rng:               rand.New(rand.NewSource(clock.Now().UnixNano())),
		state:             Paused,
	}
}

type noopLogger struct{}

func (noopLogger) Log(level, message string, metadata map[string]interface{}) {}

func (e *Engine) SetState(s RunState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}

func (e *Engine) State() RunState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// --- World setup commands (idempotent add-* stream) ---

func (e *Engine) AddSector(s *sector.Sector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Sectors.AddSector(s)
}

func (e *Engine) AddGatePair(gp *sector.GatePair) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Sectors.AddGatePair(gp)
}

func (e *Engine) AddShip(s *ship.Ship) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ships[s.ID] = s
	if sec, ok := e.Sectors.Sector(s.Sector); ok {
		sec.AddShip(s.ID)
	}
}

func (e *Engine) Ship(id shared.EntityID) (*ship.Ship, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.ships[id]
	return s, ok
}

func (e *Engine) Ships() []*ship.Ship {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*ship.Ship, 0, len(e.ships))
	for _, s := range e.ships {
		out = append(out, s)
	}
	return out
}

// AddStation registers a station's inventory and its interaction queue,
// which admits at most maxConcurrent ships at once.
func (e *Engine) AddStation(id shared.EntityID, coord hexgrid.Coord, cargoCapacity, maxConcurrent int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stationInventories[id] = inventory.New(cargoCapacity)
	e.stationSectors[id] = coord
	e.interactionQs[id] = interactionqueue.New(maxConcurrent)
	if sec, ok := e.Sectors.Sector(coord); ok {
		sec.AddStation(id)
	}
}

// StationsInSector lists every station registered in coord.
func (e *Engine) StationsInSector(coord hexgrid.Coord) []shared.EntityID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []shared.EntityID
	for id, c := range e.stationSectors {
		if c == coord {
			out = append(out, id)
		}
	}
	return out
}

func (e *Engine) StationInventory(id shared.EntityID) (*inventory.Inventory, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	inv, ok := e.stationInventories[id]
	return inv, ok
}

func (e *Engine) InteractionQueue(id shared.EntityID) (*interactionqueue.Queue, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	q, ok := e.interactionQs[id]
	return q, ok
}

// AddAsteroidField registers a sector's field for one material.
// avgVelocity and oreMax feed the respawn formulas, which need them
// every tick but don't retain them on asteroid.Field itself.
func (e *Engine) AddAsteroidField(coord hexgrid.Coord, material string, field *asteroid.Field, avgVelocity hexgrid.Vec2, oreMax float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := fieldKey{Coord: coord, Material: material}
	e.asteroidFields[key] = field
	e.fieldMeta[key] = fieldMetadata{AvgVelocity: avgVelocity, OreMax: oreMax}
	for _, a := range field.Live() {
		e.asteroidIndex[a.ID] = key
	}
	if sec, ok := e.Sectors.Sector(coord); ok {
		sec.SetFeature(sector.FeatureAsteroidField, true)
	}
}

func (e *Engine) Asteroid(id shared.EntityID) (*asteroid.Asteroid, *asteroid.Field, bool) {
	e.mu.RLock()
	key, ok := e.asteroidIndex[id]
	e.mu.RUnlock()
	if !ok {
		return nil, nil, false
	}
	e.mu.RLock()
	field, ok := e.asteroidFields[key]
	e.mu.RUnlock()
	if !ok {
		return nil, nil, false
	}
	for _, a := range field.Live() {
		if a.ID == id {
			return a, field, true
		}
	}
	return nil, nil, false
}

func (e *Engine) AddConstructionSite(id shared.EntityID, coord hexgrid.Coord, site *construction.Site) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.constructionSites[id] = site
	e.constructionSectors[id] = coord
}

func (e *Engine) ConstructionSite(id shared.EntityID) (*construction.Site, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.constructionSites[id]
	return s, ok
}

// AddGasGiant registers a harvestable body at coord/localPos, along
// with the interaction queue gating concurrent HarvestGas tasks on it.
func (e *Engine) AddGasGiant(id shared.EntityID, coord hexgrid.Coord, localPos hexgrid.Vec2, gas string, maxConcurrent int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gasGiants[id] = gasGiant{Coord: coord, LocalPos: localPos, Gas: gas}
	e.interactionQs[id] = interactionqueue.New(maxConcurrent)
}

// GasGiantsInSector lists every gas giant registered in coord.
func (e *Engine) GasGiantsInSector(coord hexgrid.Coord) []shared.EntityID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []shared.EntityID
	for id, g := range e.gasGiants {
		if g.Coord == coord {
			out = append(out, id)
		}
	}
	return out
}

func (e *Engine) AddOrbitingBody(id shared.EntityID, coord hexgrid.Coord, o *orbit.ConstantOrbit) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orbitingBodies = append(e.orbitingBodies, &orbitingBody{ID: id, Sector: coord, Orbit: o})
}

func (e *Engine) emit(kind string, data map[string]any) {
	e.mu.Lock()
	e.events = append(e.events, Event{Kind: kind, Data: data})
	e.mu.Unlock()
}

// DrainEvents returns and clears accumulated events, for the event
// stream hub or persistence layer to consume after each tick.
func (e *Engine) DrainEvents() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.events
	e.events = nil
	return out
}
