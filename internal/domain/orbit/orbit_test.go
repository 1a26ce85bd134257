package orbit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/domain/orbit"
)

func TestNew_EarthMassUnsupported(t *testing.T) {
	_, err := orbit.New(1000, 0, 5.972e24, orbit.EarthMass)
	assert.Error(t, err)
}

func TestNew_VelocityComputedFromCircularMechanics(t *testing.T) {
	o, err := orbit.New(1000, 0, 1.989e30, orbit.SolarMass)
	require.NoError(t, err)
	assert.Greater(t, o.Velocity, 0.0)
}

func TestAdvance_WrapsAngle(t *testing.T) {
	o := &orbit.ConstantOrbit{Radial: 100, Angle: 350, Velocity: 20}
	o.Advance(1) // +20 degrees -> wraps past 360

	assert.InDelta(t, 10.0, o.Angle, 1e-9)
}

func TestWorldPosition_OffsetsFromSectorCenter(t *testing.T) {
	o := &orbit.ConstantOrbit{Radial: 100, Angle: 0, Velocity: 0}
	x, y := o.WorldPosition(500, 500)
	assert.InDelta(t, 600, x, 1e-9)
	assert.InDelta(t, 500, y, 1e-9)
}
