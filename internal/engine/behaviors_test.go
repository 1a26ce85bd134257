package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/domain/construction"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/sector"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/engine"
)

func TestEngine_AutoHarvestPlansAMoveAccessHarvestSequence(t *testing.T) {
	m := manifest.New()
	m.AddItem(manifest.Item{ID: "hydrogen", Name: "Hydrogen", Size: 1, MinPrice: 1, MaxPrice: 5})
	e := engine.New(engine.Config{TickDelta: 1}, m, nil, shared.NewMockClock(time.Time{}))
	e.RegisterDefaultBehaviors()

	coord := hexgrid.Coord{Q: 0, R: 0}
	e.AddSector(sector.NewSector(coord, 1000))
	e.AddGasGiant(shared.EntityID("giant-1"), coord, hexgrid.Vec2{X: 100, Y: 0}, "hydrogen", 1)

	s := ship.New(shared.EntityID("ship-1"), "tanker", coord, 20)
	s.Behavior.Name = "AutoHarvest"
	e.AddShip(s)

	e.SetState(engine.Running)
	e.Tick()

	active := s.Tasks.Active()
	require.NotNil(t, active, "a gas giant in-sector should produce a plan the same tick")
	assert.Equal(t, "MoveToEntity", active.Kind.String())
	target, _ := active.Param("target")
	assert.Equal(t, shared.EntityID("giant-1"), target)
}

func TestEngine_AutoHarvestFindsNothingWithNoGasGiants(t *testing.T) {
	m := manifest.New()
	e := engine.New(engine.Config{TickDelta: 1}, m, nil, shared.NewMockClock(time.Time{}))
	e.RegisterDefaultBehaviors()
	coord := hexgrid.Coord{Q: 0, R: 0}
	e.AddSector(sector.NewSector(coord, 1000))
	s := ship.New(shared.EntityID("ship-1"), "tanker", coord, 20)
	s.Behavior.Name = "AutoHarvest"
	e.AddShip(s)

	e.SetState(engine.Running)
	e.Tick()

	assert.Nil(t, s.Tasks.Active(), "no gas giants in sector means no plan")
	assert.NotZero(t, s.Behavior.NextIdleUpdate, "a failed selection should arm the back-off timer")
}

func TestEngine_AutoConstructRoutesToAKnownSite(t *testing.T) {
	m := manifest.New()
	e := engine.New(engine.Config{TickDelta: 1}, m, nil, shared.NewMockClock(time.Time{}))
	e.RegisterDefaultBehaviors()
	coord := hexgrid.Coord{Q: 0, R: 0}
	e.AddSector(sector.NewSector(coord, 1000))

	s := ship.New(shared.EntityID("ship-1"), "builder", coord, 20)
	s.Behavior.Name = "AutoConstruct"
	e.AddShip(s)

	e.AddConstructionSite(shared.EntityID("site-1"), coord, newTestSite(t))

	e.SetState(engine.Running)
	e.Tick()

	active := s.Tasks.Active()
	require.NotNil(t, active)
	assert.Equal(t, "MoveToEntity", active.Kind.String(), "same-sector AutoConstruct skips gate hops straight to the move-to-site step")
}

func TestEngine_AutoTradeRequiresAtLeastTwoStations(t *testing.T) {
	m := manifest.New()
	m.AddItem(manifest.Item{ID: "ore", Name: "Ore", Size: 1, MinPrice: 1, MaxPrice: 10})
	e := engine.New(engine.Config{TickDelta: 1}, m, nil, shared.NewMockClock(time.Time{}))
	e.RegisterDefaultBehaviors()
	coord := hexgrid.Coord{Q: 0, R: 0}
	e.AddSector(sector.NewSector(coord, 1000))
	e.AddStation(shared.EntityID("station-1"), coord, 100, 1)

	s := ship.New(shared.EntityID("ship-1"), "trader", coord, 20)
	s.Behavior.Name = "AutoTrade"
	e.AddShip(s)

	e.SetState(engine.Running)
	e.Tick()

	assert.Nil(t, s.Tasks.Active(), "a single station can't produce a buy/sell pair")
}

func newTestSite(t *testing.T) *construction.Site {
	t.Helper()
	return construction.NewSite(shared.EntityID("site-1"))
}
