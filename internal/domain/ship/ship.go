// Package ship defines the Ship entity: the per-ship mutable state the
// rest of the simulation reads and writes each tick (position, velocity,
// inventory, task queue, behavior record), owned exclusively by the
// ship itself.
package ship

import (
	"math"
	"sync"

	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/inventory"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/task"
)

// Behavior is the autonomous-selector state attached to a ship: which
// selector runs, its back-off timer, and any selector-specific fields
// (AutoMine's ore_item/state, for instance).
type Behavior struct {
	Name           string
	NextIdleUpdate shared.Timestamp
	Data           map[string]any
}

func (b *Behavior) Get(key string) (any, bool) {
	if b.Data == nil {
		return nil, false
	}
	v, ok := b.Data[key]
	return v, ok
}

func (b *Behavior) Set(key string, val any) {
	if b.Data == nil {
		b.Data = map[string]any{}
	}
	b.Data[key] = val
}

// DockedMarker records the target a docked ship is attached to.
type DockedMarker struct {
	Target shared.EntityID
}

// Ship is one autonomous agent: its physical state, inventory, task
// queue, and behavior record.
type Ship struct {
	ID         shared.EntityID
	ConfigID   string
	Sector     hexgrid.Coord
	Position   hexgrid.Vec2
	Rotation   float64 // radians
	ForwardVel float64 // scalar speed along heading
	AngularVel float64 // radians/sec

	Inventory *inventory.Inventory
	Tasks     *task.Queue
	Behavior  *Behavior

	mu      sync.Mutex
	docked  *DockedMarker
	visible bool
	scale   float64
}

func New(id shared.EntityID, configID string, sector hexgrid.Coord, cargoCapacity int) *Ship {
	return &Ship{
		ID:        id,
		ConfigID:  configID,
		Sector:    sector,
		Inventory: inventory.New(cargoCapacity),
		Tasks:     task.NewQueue(),
		Behavior:  &Behavior{},
		visible:   true,
		scale:     1,
	}
}

func (s *Ship) IsIdle() bool { return s.Tasks.IsIdle() }

// Velocity returns the ship's world-space velocity. Forward points along
// rotation+π/2, the heading convention the steering angle-error
// computation assumes.
func (s *Ship) Velocity() hexgrid.Vec2 {
	heading := s.Rotation + math.Pi/2
	return hexgrid.Vec2{
		X: s.ForwardVel * math.Cos(heading),
		Y: s.ForwardVel * math.Sin(heading),
	}
}

// Dock attaches the IsDocked marker and hides the ship, the
// on-completion behavior for the DockAtEntity task.
func (s *Ship) Dock(target shared.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docked = &DockedMarker{Target: target}
	s.visible = false
	s.scale = 0
}

// Undock releases the IsDocked marker and reveals the ship, the
// on-Started behavior for the Undock task.
func (s *Ship) Undock() (target shared.EntityID, wasDocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docked == nil {
		return "", false
	}
	target = s.docked.Target
	s.docked = nil
	s.visible = true
	s.scale = 1
	return target, true
}

func (s *Ship) IsDocked() (shared.EntityID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docked == nil {
		return "", false
	}
	return s.docked.Target, true
}

func (s *Ship) SetScale(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = scale
}

func (s *Ship) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

func (s *Ship) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
}

func (s *Ship) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}
