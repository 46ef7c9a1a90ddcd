// Package svoronoi builds spherical Voronoi diagrams from points on the
// unit sphere, using a sweep-by-colatitude adaptation of Fortune's
// algorithm, with optional Lloyd relaxation passes.
package svoronoi

import (
	"errors"
	"fmt"

	"github.com/RomanAkberov/spherical-voronoi/diagram"
	"github.com/RomanAkberov/spherical-voronoi/internal/builder"
	"github.com/RomanAkberov/spherical-voronoi/internal/sgeo"
)

// ErrTooFewPoints is returned by Build when fewer than two sites are
// given: a single site (or none) has no Voronoi cell boundaries.
var ErrTooFewPoints = errors.New("svoronoi: fewer than two points given")

// ErrSitesTooClose is returned by Build when WithMinSeparation is set
// and two input sites fall within that distance of each other.
var ErrSitesTooClose = builder.ErrSitesTooClose

// Option configures a Build call.
type Option = builder.Option

// Point is the site/vertex type Build consumes and diagrams report
// positions in.
type Point = sgeo.Point

// Diagram is the graph Build returns.
type Diagram = diagram.Diagram

// WithLogger overrides the default slog.Default() logger used for
// sweep tracing.
var WithLogger = builder.WithLogger

// WithMinSeparation rejects input containing two sites closer than eps.
var WithMinSeparation = builder.WithMinSeparation

// FromCartesian constructs a Point from its Cartesian coordinates,
// normalizing onto the unit sphere.
func FromCartesian(x, y, z float64) sgeo.Point { return sgeo.FromCartesian(x, y, z) }

// FromAngles constructs a Point from colatitude theta and longitude phi,
// both in radians.
func FromAngles(theta, phi float64) sgeo.Point { return sgeo.FromAngles(theta, phi) }

// Build constructs the spherical Voronoi diagram of positions, running
// one sweep pass followed by relaxations-1 Lloyd relaxation passes
// (relaxations == 0 behaves like 1). It returns ErrTooFewPoints for
// fewer than two sites, ErrSitesTooClose if WithMinSeparation rejects
// the input, and wraps any internal invariant violation as an error
// instead of letting the panic escape.
func Build(positions []sgeo.Point, relaxations uint, opts ...Option) (d *diagram.Diagram, err error) {
	if len(positions) < 2 {
		return nil, ErrTooFewPoints
	}
	b, err := builder.New(positions, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(*diagram.InvariantViolation)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%w", iv)
		}
	}()
	return b.Run(relaxations), nil
}
