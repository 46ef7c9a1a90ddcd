package sgeo

import (
	"math"

	"github.com/golang/geo/r3"
)

// degenerateIntersect bounds how close a, b may be to (0, 0) before the
// formula below is treated as degenerate rather than merely ill-conditioned.
const degenerateIntersect = 1e-12

// Intersect computes the phi at which the beach-line arcs belonging to
// site0 and site1 meet, evaluated relative to site2's own longitude, with
// the sweep line implicitly at site2's colatitude. This is spec.md §4.3's
// formula, lifted verbatim from original_source/src/beach_line.rs's
// BeachLine::intersect so that locate() and the skip-list descent in
// internal/beach can call it as a pure function.
//
// The return value is only meaningful relative to other Intersect calls
// sharing the same site2 — every call subtracts site2.Phi, so comparing
// two results for different (site0, site1) pairs against the same site2
// is what internal/beach's locate and insertion-point search actually do.
func Intersect(site0, site1, site2 Point) float64 {
	u1 := (site2.Theta.Cos - site1.Theta.Cos) * site0.Theta.Sin
	u2 := (site2.Theta.Cos - site0.Theta.Cos) * site1.Theta.Sin
	a := u1*site0.Phi.Cos - u2*site1.Phi.Cos
	b := u1*site0.Phi.Sin - u2*site1.Phi.Sin
	length := math.Hypot(a, b)
	if length < degenerateIntersect {
		// u1 and u2 both vanish only when site2's colatitude also ties
		// site0's and site1's (e.g. three beach-line sites swept in from
		// the same parallel), which forces a == b == 0 regardless of any
		// site's longitude: the general formula then divides 0/0. The
		// bisector between two equal-colatitude foci is the longitude
		// halfway between them, independent of the sweep colatitude —
		// the spherical analogue of the planar sweep's vertical-tie
		// bisector. atan2 of the summed unit vectors picks that midpoint
		// directly, without needing an explicit wraparound branch.
		mid := math.Atan2(site0.Phi.Sin+site1.Phi.Sin, site0.Phi.Cos+site1.Phi.Cos)
		return Wrap(mid - site2.Phi.Value)
	}
	c := (site0.Theta.Cos - site1.Theta.Cos) * site2.Theta.Sin
	gamma := math.Atan2(a, b)
	phiPlusGamma := math.Asin(clamp(c/length, -1, 1))
	return Wrap(phiPlusGamma - gamma - site2.Phi.Value)
}

// Circumcenter computes the spherical circumcenter of three consecutive
// beach-line arcs (prev, mid, next) and the colatitude at which mid's arc
// vanishes, per spec.md §4.4 steps 1-2: the center is the normalized cross
// product of the two chords from mid, and the vanish colatitude is the
// south-pole angle of the center plus its angular radius from mid.
func Circumcenter(prev, mid, next Point) (center r3.Vector, fireTheta float64) {
	fromPrev := prev.Position.Sub(mid.Position)
	fromNext := next.Position.Sub(mid.Position)
	center = fromPrev.Cross(fromNext).Normalize()
	fireTheta = math.Acos(clamp(center.Z, -1, 1)) + math.Acos(clamp(center.Dot(mid.Position), -1, 1))
	return center, fireTheta
}

// TriangleArea returns the area (in steradians) of the spherical triangle
// with the given unit-vector vertices, via L'Huilier's theorem: it stays
// well-conditioned for the small, near-equilateral triangles a Voronoi
// cell's site-to-boundary fan produces, unlike computing Girard's excess
// directly from the triangle's interior angles.
func TriangleArea(a, b, c r3.Vector) float64 {
	sideA := centralAngle(b, c)
	sideB := centralAngle(a, c)
	sideC := centralAngle(a, b)
	s := (sideA + sideB + sideC) / 2
	t := math.Tan(s/2) * math.Tan((s-sideA)/2) * math.Tan((s-sideB)/2) * math.Tan((s-sideC)/2)
	if t < 0 {
		t = 0 // clamp away rounding noise at a degenerate (zero-area) triangle.
	}
	return 4 * math.Atan(math.Sqrt(t))
}

func centralAngle(u, v r3.Vector) float64 {
	return math.Acos(clamp(u.Dot(v), -1, 1))
}

// degenerateCentroid bounds how close the summed vector may be to the
// origin before Normalize's result is untrustworthy: Normalize only special-
// cases an exactly-zero vector, so a near-antipodal sum that lands a few ULP
// off zero would otherwise renormalize to an arbitrary, noise-driven point.
const degenerateCentroid = 1e-9

// Centroid returns the mean of the given points' Cartesian positions,
// renormalized onto the unit sphere, used by Lloyd relaxation (spec.md
// §4.1) to replace a cell's site with the centroid of its vertices. Points
// that nearly cancel (an antipodal or near-antipodal set) have no
// well-defined direction to renormalize onto, so Centroid returns the
// origin rather than an arbitrary pole.
func Centroid(points []Point) Point {
	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(p.Position)
	}
	if sum.Norm() < degenerateCentroid {
		return FromCartesian(0, 0, 0)
	}
	n := sum.Normalize()
	return FromCartesian(n.X, n.Y, n.Z)
}
