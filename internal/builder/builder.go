// Package builder drives the sweep-by-colatitude construction algorithm:
// it owns the beach line and event queue for one pass, dispatches site
// and circle events, stitches edges through the pending-vertex table,
// and runs Lloyd relaxation across passes (spec.md §4.1).
package builder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/RomanAkberov/spherical-voronoi/diagram"
	"github.com/RomanAkberov/spherical-voronoi/internal/arena"
	"github.com/RomanAkberov/spherical-voronoi/internal/beach"
	"github.com/RomanAkberov/spherical-voronoi/internal/events"
	"github.com/RomanAkberov/spherical-voronoi/internal/sgeo"
)

// LevelTrace is a custom, sub-Debug slog level for per-event sweep
// tracing, following the custom-level pattern of sarchlab/zeonica's
// core.LevelTrace (it defines its own levels alongside the stdlib four;
// we pick the arithmetic that keeps trace strictly quieter than Debug).
const LevelTrace = slog.LevelDebug - 4

// ErrSitesTooClose is returned by New when two input sites are closer
// than the configured minimum separation (WithMinSeparation). It is an
// explicit, opt-in guard — spec.md's Non-goals exclude exact-degeneracy
// *robustness*, not a caller's ability to reject obviously coincident
// input up front.
var ErrSitesTooClose = errors.New("svoronoi: two sites are closer than the configured minimum separation")

const noVertex diagram.Vertex = -1

// Option configures a Builder. Functional options, matching the
// WithEps/DiagramOption shape seen in other_examples' s2voronoi package.
type Option func(*Builder)

// WithLogger overrides the builder's logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithMinSeparation rejects input whose closest pair of sites is nearer
// than eps (Euclidean chord distance). Disabled (eps <= 0) by default.
func WithMinSeparation(eps float64) Option {
	return func(b *Builder) { b.minSeparation = eps }
}

// Builder owns all state for one multi-pass build: the diagram under
// construction, the live beach line and event queue for the current
// pass, and the pending-vertex table shared between the two arcs that
// flank each nascent edge.
type Builder struct {
	diagram       *diagram.Diagram
	beach         beach.BeachLine
	queue         events.Queue
	starts        arena.Arena[diagram.Vertex]
	logger        *slog.Logger
	minSeparation float64
	scanTheta     float64
}

// New validates positions and seeds a Builder's diagram with one cell
// per position, in input order (spec.md §4.1 step 1, §5's determinism
// requirement that cells are added in input order).
func New(positions []sgeo.Point, opts ...Option) (*Builder, error) {
	b := &Builder{diagram: diagram.New(), logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	if b.minSeparation > 0 {
		for i := range positions {
			for j := i + 1; j < len(positions); j++ {
				if positions[i].Distance(positions[j]) < b.minSeparation {
					return nil, ErrSitesTooClose
				}
			}
		}
	}
	for _, p := range positions {
		b.diagram.AddCell(p)
	}
	return b, nil
}

// Run executes the first build pass, then relaxations-1 further Lloyd
// relaxation passes, and returns the finished diagram. relaxations == 0
// is treated the same as 1 (spec.md says "relaxations >= 1"; zero is
// clamped rather than rejected, see DESIGN.md).
func (b *Builder) Run(relaxations uint) *diagram.Diagram {
	if relaxations == 0 {
		relaxations = 1
	}
	b.buildPass()
	for i := uint(1); i < relaxations; i++ {
		b.relax()
		b.buildPass()
	}
	b.diagram.Finish(b.scanTheta)
	return b.diagram
}

func (b *Builder) relax() {
	for _, c := range b.diagram.Cells() {
		b.diagram.SetCellSite(c, b.diagram.Centroid(c))
	}
	b.diagram.Reset()
}

func (b *Builder) buildPass() {
	b.beach.Clear()
	b.queue.Clear()
	b.starts.Reset()

	for _, c := range b.diagram.Cells() {
		b.queue.PushSite(int(c), b.diagram.CellSite(c).Theta.Value)
	}

	for {
		event, ok := b.queue.Pop()
		if !ok {
			break
		}
		b.scanTheta = event.Theta
		if event.Kind == events.Site {
			b.siteEvent(diagram.Cell(event.Site), event.Theta)
		} else {
			b.circleEvent(event)
		}
	}
}

// siteEvent implements spec.md §4.1/§9: locate-and-split creates a twin
// and a new arc (three arcs total across the split; the second site ever
// inserted gets no twin, see beach.Insert), invalidates
// the split arc's stale circle event first, then enqueues fresh circles
// for both newly adjacent triples.
//
// prev (=twin) and next (=the reused split-arc handle) share the same
// site by construction, so there is exactly one new edge born here,
// bisecting the split site and the new site; its two ends are (prev,arc)
// and (arc,next), the same bisector. createTemporary(prev, arc) gives
// that single edge its shared pending-vertex slot. next.start already
// tracks the unrelated, still-pending edge between the split arc and
// whatever sits to its own right, and must not be touched.
func (b *Builder) siteEvent(cell diagram.Cell, theta float64) {
	b.trace("site event", "cell", int(cell), "theta", theta)
	arc := b.beach.Insert(cell, b.diagram)
	prev, next := b.beach.Neighbors(arc)
	if prev == arc {
		return // first site ever inserted: no neighbors, no edge.
	}
	// next is the pre-existing arc that got split (spec.md's "split
	// arc"); its old circle event, if any, no longer reflects its new
	// neighbor and must be invalidated before anything is re-enqueued.
	b.detachCircle(next)
	b.createTemporary(prev, arc)
	if prev != next {
		b.attachCircle(prev, theta)
		b.attachCircle(next, theta)
	}
}

// circleEvent implements spec.md §4.4's "On circle-event fire" steps and
// §4.5's edge stitching at vertex birth.
func (b *Builder) circleEvent(event events.Event) {
	record := b.queue.Circle(event.Circle)
	arc := record.Arc
	prev, next := b.beach.Neighbors(arc)

	b.trace("circle event", "theta", event.Theta)

	b.beach.DetachCircle(arc)
	b.detachCircle(prev)
	b.detachCircle(next)

	vertex := b.diagram.AddVertex(record.Center, [3]diagram.Cell{
		b.beach.Cell(prev), b.beach.Cell(arc), b.beach.Cell(next),
	})
	b.createEdge(prev, vertex)
	b.createEdge(arc, vertex)
	b.beach.Remove(arc)

	if b.beach.Prev(prev) == next {
		// Exactly two arcs remain (prev, next): the sphere has no
		// unbounded face, so this last shared boundary closes here
		// instead of waiting for a circle event that can never fire
		// for a 2-arc beach line.
		b.createEdge(next, vertex)
		b.beach.Remove(prev)
		b.beach.Remove(next)
		return
	}
	b.attachCircle(prev, event.Theta)
	b.beach.SetStart(prev, beach.Start{Kind: beach.StartVertex, Vertex: vertex})
	b.attachCircle(next, event.Theta)
}

// createTemporary links two newly-adjacent arcs to a fresh pending-vertex
// slot, shared between them: whichever witnesses its endpoint first
// stores it, the second emits the edge (spec.md §4.5).
func (b *Builder) createTemporary(arc0, arc1 beach.Arc) {
	handle := b.starts.New(noVertex)
	b.beach.SetStart(arc0, beach.Start{Kind: beach.StartTemporary, Temp: handle})
	b.beach.SetStart(arc1, beach.Start{Kind: beach.StartTemporary, Temp: handle})
}

// createEdge resolves arc's start tag against end: emits a finished edge
// if the other side already recorded a vertex, otherwise records end as
// the first witness.
func (b *Builder) createEdge(arc beach.Arc, end diagram.Vertex) {
	start := b.beach.Start(arc)
	switch start.Kind {
	case beach.StartNone:
		return
	case beach.StartVertex:
		b.diagram.AddEdge(start.Vertex, end)
	case beach.StartTemporary:
		stored := b.starts.Get(start.Temp)
		if *stored == noVertex {
			*stored = end
		} else {
			b.diagram.AddEdge(*stored, end)
		}
	}
}

// attachCircle computes the circumcenter of arc's current triple and, if
// it fires no earlier than minTheta, enqueues a circle event and records
// its handle on arc (spec.md §4.4 steps 1-3).
func (b *Builder) attachCircle(arc beach.Arc, minTheta float64) {
	prev, next := b.beach.Neighbors(arc)
	if prev == arc || next == arc || prev == next {
		return // fewer than three distinct arcs: no triple to collapse.
	}
	prevSite := b.diagram.CellSite(b.beach.Cell(prev))
	midSite := b.diagram.CellSite(b.beach.Cell(arc))
	nextSite := b.diagram.CellSite(b.beach.Cell(next))
	center, fireTheta := sgeo.Circumcenter(prevSite, midSite, nextSite)
	if fireTheta < minTheta {
		return
	}
	handle := b.queue.PushCircle(arc, center, fireTheta)
	b.beach.AttachCircle(arc, handle)
}

// detachCircle invalidates arc's attached circle record (if any) in the
// event queue and clears the beach line's reference to it.
func (b *Builder) detachCircle(arc beach.Arc) {
	if handle := b.beach.Circle(arc); handle.Valid() {
		b.queue.Invalidate(handle)
		b.beach.DetachCircle(arc)
	}
}

func (b *Builder) trace(msg string, args ...any) {
	if b.logger == nil {
		return
	}
	b.logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Diagram exposes the in-progress diagram, for callers that want to peek
// at intermediate state without running a full pass.
func (b *Builder) Diagram() *diagram.Diagram { return b.diagram }
