package sgeo

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

// Three points spread around the equator: their circumcenter should be a
// unit vector at a pole, and the fire colatitude should be positive.
func TestCircumcenterEquatorialTriple(t *testing.T) {
	a := FromAngles(math.Pi/2, 0)
	b := FromAngles(math.Pi/2, 2*math.Pi/3)
	c := FromAngles(math.Pi/2, -2*math.Pi/3)

	center, fireTheta := Circumcenter(a, b, c)
	assert.InDelta(t, 1, center.Norm(), 1e-9)
	// Either pole is a valid circumcenter of three equally spaced
	// equatorial points; only the magnitude of Z is pinned down.
	assert.InDelta(t, 1, math.Abs(center.Z), 1e-6)
	assert.Greater(t, fireTheta, 0.0)
}

// All three sites sharing a colatitude is the only input that zeroes both
// u1 and u2 unconditionally, making the general intersection formula divide
// 0/0; Intersect must fall back to site0/site1's longitude midpoint instead
// of returning NaN.
func TestIntersectAllThreeSitesTiedColatitudeFallsBackToLongitudeMidpoint(t *testing.T) {
	site0 := FromAngles(math.Pi/2, 0)
	site1 := FromAngles(math.Pi/2, math.Pi/2)
	site2 := FromAngles(math.Pi/2, math.Pi)

	got := Intersect(site0, site1, site2)
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, Wrap(math.Pi/4-site2.Phi.Value), got, 1e-9)
}

// site0 and site1 merely sharing a colatitude, with site2 elsewhere, is not
// degenerate (u1/u2 only vanish when site2 ties too): the general formula
// must still run and return a finite, non-NaN phi.
func TestIntersectTwoSitesTiedColatitudeIsNotDegenerate(t *testing.T) {
	site0 := FromAngles(math.Pi/2, 0)
	site1 := FromAngles(math.Pi/2, math.Pi/2)
	site2 := FromAngles(0.3, 0.1)

	got := Intersect(site0, site1, site2)
	assert.False(t, math.IsNaN(got))
}

// Three mutually orthogonal axis points bound exactly one octant of the
// sphere: area = (4*pi)/8 = pi/2 steradians.
func TestTriangleAreaOctant(t *testing.T) {
	x := r3.Vector{X: 1}
	y := r3.Vector{Y: 1}
	z := r3.Vector{Z: 1}
	assert.InDelta(t, math.Pi/2, TriangleArea(x, y, z), 1e-9)
}

func TestCentroidOfSinglePointIsItself(t *testing.T) {
	p := FromAngles(0.7, 1.2)
	got := Centroid([]Point{p})
	assert.InDelta(t, p.Position.X, got.Position.X, 1e-9)
	assert.InDelta(t, p.Position.Y, got.Position.Y, 1e-9)
	assert.InDelta(t, p.Position.Z, got.Position.Z, 1e-9)
}

// Antipodal inputs sum to the zero vector up to rounding (sin(pi) is not
// exactly 0, so this fixture's sum is ~1e-16), which has no well-defined
// direction to renormalize onto the sphere; Centroid documents this by
// returning the origin rather than panicking or picking an arbitrary pole.
func TestCentroidOfAntipodalPairIsDegenerate(t *testing.T) {
	north := FromAngles(0, 0)
	south := FromAngles(math.Pi, 0)
	got := Centroid([]Point{north, south})
	assert.InDelta(t, 0, got.Position.Norm(), 1e-9)
}
