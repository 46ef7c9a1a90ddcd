package sgeo

import "math"

// Angle stores a value together with its sine and cosine so that callers
// never recompute trigonometric functions they already have, mirroring
// original_source/src/angle.rs's Angle type.
type Angle struct {
	Value float64
	Sin   float64
	Cos   float64
}

// NewAngle builds an Angle from a raw radian value, computing sin/cos once.
func NewAngle(value float64) Angle {
	return Angle{Value: value, Sin: math.Sin(value), Cos: math.Cos(value)}
}

// Wrap normalizes a radian value to (-pi, pi].
func Wrap(value float64) float64 {
	value = math.Remainder(value, 2*math.Pi)
	if value <= -math.Pi {
		return value + 2*math.Pi
	}
	return value
}

// Wrapped returns a with its Value normalized to (-pi, pi], keeping the
// cached sin/cos (they're periodic, so they don't change).
func (a Angle) Wrapped() Angle {
	return Angle{Value: Wrap(a.Value), Sin: a.Sin, Cos: a.Cos}
}

// between reports whether a.Value lies on the cyclic arc from start to end,
// inclusive, going in the direction of increasing angle.
func between(value, start, end float64) bool {
	if start < end {
		return start <= value && value <= end
	}
	return start <= value || value <= end
}

// IsInRange is the three-way cyclic comparator spec.md §4.3 calls for:
// 0 means a lies on [start, end]; a negative result means a is closer to
// (clockwise of) start; a positive result means a is closer to
// (counter-clockwise of) end. It never uses raw "<" on the angle itself,
// only on wrapped differences, so it is safe across the +-pi seam.
func (a Angle) IsInRange(start, end float64) int {
	if between(a.Value, start, end) {
		return 0
	}
	if math.Abs(Wrap(a.Value-end)) < math.Abs(Wrap(a.Value-start)) {
		return 1
	}
	return -1
}
