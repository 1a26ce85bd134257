package pathfinding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/pathfinding"
	"github.com/duskline/hexsim/internal/domain/sector"
)

// buildLine wires a straight chain of sectors 0..n-1 along the Q axis,
// connected by gate pairs, so route length is easy to predict.
func buildLine(t *testing.T, n int) *sector.Graph {
	t.Helper()
	g := sector.NewGraph()
	for i := 0; i < n; i++ {
		g.AddSector(sector.NewSector(hexgrid.Coord{Q: i, R: 0}, 500))
	}
	for i := 0; i < n-1; i++ {
		gp := &sector.GatePair{
			ID: "gate-" + string(rune('a'+i)),
			A:  sector.Gate{SectorCoord: hexgrid.Coord{Q: i, R: 0}},
			B:  sector.Gate{SectorCoord: hexgrid.Coord{Q: i + 1, R: 0}},
		}
		require.NoError(t, g.AddGatePair(gp))
	}
	return g
}

func TestFindRoute_StraightLine(t *testing.T) {
	g := buildLine(t, 5)

	route, ok := pathfinding.FindRoute(g, hexgrid.Coord{Q: 0, R: 0}, hexgrid.Coord{Q: 4, R: 0})

	require.True(t, ok)
	require.Len(t, route, 5)
	assert.Equal(t, hexgrid.Coord{Q: 0, R: 0}, route[0])
	assert.Equal(t, hexgrid.Coord{Q: 4, R: 0}, route[4])
}

func TestFindRoute_SameSector(t *testing.T) {
	g := buildLine(t, 3)
	route, ok := pathfinding.FindRoute(g, hexgrid.Coord{Q: 1, R: 0}, hexgrid.Coord{Q: 1, R: 0})
	require.True(t, ok)
	assert.Equal(t, []hexgrid.Coord{{Q: 1, R: 0}}, route)
}

func TestFindRoute_Unreachable(t *testing.T) {
	g := sector.NewGraph()
	g.AddSector(sector.NewSector(hexgrid.Coord{Q: 0, R: 0}, 500))
	g.AddSector(sector.NewSector(hexgrid.Coord{Q: 10, R: 10}, 500))

	_, ok := pathfinding.FindRoute(g, hexgrid.Coord{Q: 0, R: 0}, hexgrid.Coord{Q: 10, R: 10})

	assert.False(t, ok)
}

func TestFindFeature_BoundedDepth(t *testing.T) {
	g := buildLine(t, 6)
	far, _ := g.Sector(hexgrid.Coord{Q: 5, R: 0})
	far.SetFeature(sector.FeatureAsteroidField, true)

	// out of range: max depth 3 can't reach a field 5 hops away.
	_, ok := pathfinding.FindFeature(g, hexgrid.Coord{Q: 0, R: 0}, sector.FeatureAsteroidField, 0, 3)
	assert.False(t, ok)

	coord, ok := pathfinding.FindFeature(g, hexgrid.Coord{Q: 0, R: 0}, sector.FeatureAsteroidField, 0, 10)
	require.True(t, ok)
	assert.Equal(t, hexgrid.Coord{Q: 5, R: 0}, coord)
}

func TestFindFeature_MinDepthExcludesOrigin(t *testing.T) {
	g := buildLine(t, 3)
	origin, _ := g.Sector(hexgrid.Coord{Q: 0, R: 0})
	origin.SetFeature(sector.FeatureStation, true)
	next, _ := g.Sector(hexgrid.Coord{Q: 1, R: 0})
	next.SetFeature(sector.FeatureStation, true)

	coord, ok := pathfinding.FindFeature(g, hexgrid.Coord{Q: 0, R: 0}, sector.FeatureStation, 1, 5)

	require.True(t, ok)
	assert.Equal(t, hexgrid.Coord{Q: 1, R: 0}, coord)
}
