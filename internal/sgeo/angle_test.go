package sgeo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{math.Pi + 0.5, 0.5 - math.Pi},
		{-math.Pi - 0.5, math.Pi - 0.5},
		{-math.Pi, math.Pi},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Wrap(c.in), 1e-12)
	}
}

func TestNewAngleCachesSinCos(t *testing.T) {
	a := NewAngle(math.Pi / 3)
	assert.InDelta(t, math.Sin(math.Pi/3), a.Sin, 1e-12)
	assert.InDelta(t, math.Cos(math.Pi/3), a.Cos, 1e-12)
}

func TestIsInRangeInside(t *testing.T) {
	a := NewAngle(0.5)
	assert.Equal(t, 0, a.IsInRange(0, 1))
}

func TestIsInRangeAcrossSeam(t *testing.T) {
	a := NewAngle(math.Pi - 0.1)
	assert.Equal(t, 0, a.IsInRange(math.Pi-0.5, -math.Pi+0.5))
}

func TestIsInRangeOutsideLeansCloser(t *testing.T) {
	a := NewAngle(2.0)
	got := a.IsInRange(0, 1)
	assert.Equal(t, 1, got)
}
