package sgeo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCartesianNormalizes(t *testing.T) {
	p := FromCartesian(2, 0, 0)
	assert.InDelta(t, 1, p.Position.Norm(), 1e-12)
	assert.InDelta(t, math.Pi/2, p.Theta.Value, 1e-9)
	assert.InDelta(t, 0, p.Phi.Value, 1e-9)
}

func TestFromAnglesRoundTrip(t *testing.T) {
	theta, phi := 1.1, -2.0
	p := FromAngles(theta, phi)
	back := FromCartesian(p.Position.X, p.Position.Y, p.Position.Z)
	assert.InDelta(t, theta, back.Theta.Value, 1e-9)
	assert.InDelta(t, phi, back.Phi.Value, 1e-9)
}

func TestDistancePoles(t *testing.T) {
	north := FromAngles(0, 0)
	south := FromAngles(math.Pi, 0)
	assert.InDelta(t, 2, north.Distance(south), 1e-9)
}
