package sgeo

import (
	"math"

	"github.com/golang/geo/r3"
)

// unitTolerance bounds how far ||position|| may drift from 1 before
// FromCartesian renormalizes defensively (spec.md §3's "Invariant:
// position has unit norm within tolerance").
const unitTolerance = 1e-9

// Point is a site or vertex on the unit sphere: a Cartesian unit vector
// plus its cached colatitude (Theta, in [0, pi]) and longitude (Phi, in
// (-pi, pi]), each carrying precomputed sin/cos. This is the Go shape of
// the "Point contract" in spec.md §6.
type Point struct {
	Position r3.Vector
	Theta    Angle
	Phi      Angle
}

// FromCartesian builds a Point from Cartesian coordinates, normalizing
// the vector when it drifts from unit length by more than unitTolerance.
func FromCartesian(x, y, z float64) Point {
	v := r3.Vector{X: x, Y: y, Z: z}
	if math.Abs(v.Norm()-1) > unitTolerance {
		v = v.Normalize()
	}
	theta := math.Acos(clamp(v.Z, -1, 1))
	phi := math.Atan2(v.Y, v.X)
	return Point{
		Position: v,
		Theta:    NewAngle(theta),
		Phi:      NewAngle(phi),
	}
}

// FromAngles builds a Point from a colatitude/longitude pair.
func FromAngles(theta, phi float64) Point {
	t := NewAngle(theta)
	p := NewAngle(phi)
	return Point{
		Position: r3.Vector{
			X: t.Sin * p.Cos,
			Y: t.Sin * p.Sin,
			Z: t.Cos,
		},
		Theta: t,
		Phi:   p,
	}
}

// Distance returns the Euclidean (chord) distance to another point.
func (p Point) Distance(other Point) float64 {
	return p.Position.Sub(other.Position).Norm()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
