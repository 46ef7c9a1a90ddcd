// Package beach implements the sweep's beach line: a cyclic, phi-ordered
// sequence of parabolic arcs backed by a cost-balanced skip list, per
// spec.md §4.2 strategy (ii) and original_source/src/beach_line.rs.
package beach

import (
	"math"

	"github.com/RomanAkberov/spherical-voronoi/diagram"
	"github.com/RomanAkberov/spherical-voronoi/internal/arena"
	"github.com/RomanAkberov/spherical-voronoi/internal/sgeo"
)

// Height is the skip list's fixed maximum level count (spec.md §4.2: "a
// skip list of fixed max height H (e.g. H=5)").
const Height = 5

// Arc identifies a live arc of the beach line. It is only meaningful for
// the BeachLine that produced it, and only while the arc is live (see
// internal/arena.Handle's liveness contract).
type Arc = arena.Handle

// StartKind tags what an arc's leading boundary currently knows about its
// not-yet-finished Voronoi edge, per spec.md §3's Arc.start union.
type StartKind int

const (
	StartNone StartKind = iota
	StartTemporary
	StartVertex
)

// Start is the tagged union spec.md §3 calls ArcStart: None, a Temporary
// index into a pending-vertex table, or an already-known diagram Vertex.
type Start struct {
	Kind   StartKind
	Temp   arena.Handle
	Vertex diagram.Vertex
}

// SiteLookup resolves a cell to the site that generates it. diagram.Diagram
// satisfies this directly via its CellSite method.
type SiteLookup interface {
	CellSite(c diagram.Cell) sgeo.Point
}

type arcData struct {
	cell  diagram.Cell
	start Start
	// circle is Invalid when the arc has no live circle event, otherwise
	// a handle into the events package's circle-record arena; BeachLine
	// never interprets it beyond equality and passes it back on request.
	circle arena.Handle

	lastTheta        float64
	lastIntersection float64

	prev, next Arc
	prevSkips  [Height]Arc
	nextSkips  [Height]Arc
}

// BeachLine is the skip-list beach line contract of spec.md §4.2.
type BeachLine struct {
	arcs   arena.Arena[arcData]
	head   Arc
	len    int
	levels [Height]int
}

// Len returns the number of live arcs.
func (b *BeachLine) Len() int { return b.len }

// Clear discards every arc, used between Lloyd relaxation passes
// (spec.md §4.1: "reset the beach, queue, and pending table").
func (b *BeachLine) Clear() {
	b.arcs.Reset()
	b.head = arena.Invalid
	b.len = 0
	b.levels = [Height]int{}
}

func (b *BeachLine) createArc(cell diagram.Cell) Arc {
	data := arcData{
		cell:    cell,
		circle:  arena.Invalid,
		lastTheta: math.Inf(-1),
	}
	for i := range data.prevSkips {
		data.prevSkips[i] = arena.Invalid
		data.nextSkips[i] = arena.Invalid
	}
	return b.arcs.New(data)
}

// Insert creates a new arc for cell, splitting the arc currently above
// cell's site (if any) into [twin, arc] per spec.md §9's adopted policy:
// when len was already > 1, a site event creates a twin and a new arc,
// three arcs total across the split. With a single live arc no twin is
// created: the new arc is linked on both sides of that arc, leaving two
// arcs. It returns the new arc; its twin (a copy of the split arc's
// cell) is Prev(arc) when len > 1.
func (b *BeachLine) Insert(cell diagram.Cell, sites SiteLookup) Arc {
	arc := b.createArc(cell)
	if b.len > 1 {
		site := sites.CellSite(cell)
		current := b.head
		level := Height - 1
		var skips [Height]Arc
		for i := range skips {
			skips[i] = arena.Invalid
		}
		for {
			nextSkip := b.nextSkipAt(current, level)
			start := b.intersectWithNext(current, site, sites)
			end := b.intersectWithNext(nextSkip, site, sites)
			if start < end {
				current = nextSkip
			} else {
				skips[level] = current
				if level > 0 {
					level--
				} else {
					break
				}
			}
		}
		next := b.Next(current)
		start := b.intersectWithNext(current, site, sites)
		end := b.intersectWithNext(next, site, sites)
		for start < end {
			next = b.Next(next)
			start = end
			end = b.intersectWithNext(next, site, sites)
		}
		current = next
		currentCell := b.Cell(current)
		twin := b.createArc(currentCell)
		prev := b.Prev(current)
		b.addLinks(twin, prev, current, &skips)
		b.addLinks(arc, twin, current, &skips)
	} else {
		if b.len == 0 {
			b.head = arc
		}
		head := b.head
		var skips [Height]Arc
		for i := range skips {
			skips[i] = head
		}
		b.addLinks(arc, head, head, &skips)
	}
	return arc
}

// Remove deletes arc and splices its neighbors, promoting a new head of
// full height when the removed arc was the head (spec.md §9).
func (b *BeachLine) Remove(arc Arc) {
	if arc == b.head {
		nextSkip := b.nextSkipAt(b.head, Height-1)
		if nextSkip != b.head {
			b.head = nextSkip
		} else {
			head := b.head
			next := b.Next(head)
			height := b.height(next)
			b.levels[height-1]--
			b.levels[Height-1]++
			for level := height; level < Height; level++ {
				ns := b.nextSkipAt(head, level)
				b.setPrevSkip(ns, level, next)
				b.setNextSkip(next, level, ns)
				b.setPrevSkip(next, level, head)
				b.setNextSkip(head, level, next)
			}
			b.head = next
		}
	}
	b.removeLinks(arc)
	b.arcs.Remove(arc)
}

// Neighbors returns arc's cyclic predecessor and successor; both equal
// arc itself when it is the only live arc.
func (b *BeachLine) Neighbors(arc Arc) (prev, next Arc) {
	data := b.arcs.Get(arc)
	return data.prev, data.next
}

func (b *BeachLine) Prev(arc Arc) Arc { return b.arcs.Get(arc).prev }
func (b *BeachLine) Next(arc Arc) Arc { return b.arcs.Get(arc).next }

// Cell returns the site cell arc belongs to.
func (b *BeachLine) Cell(arc Arc) diagram.Cell { return b.arcs.Get(arc).cell }

// Circle returns arc's attached circle-event handle, or arena.Invalid.
func (b *BeachLine) Circle(arc Arc) arena.Handle { return b.arcs.Get(arc).circle }

// AttachCircle records that handle is the circle event that would
// collapse arc next.
func (b *BeachLine) AttachCircle(arc Arc, handle arena.Handle) {
	b.arcs.Get(arc).circle = handle
}

// DetachCircle clears arc's circle handle. The caller is responsible for
// invalidating the underlying circle record in the event queue first
// (spec.md §4.4's "Invalidation" rule lives at the queue layer, not here).
func (b *BeachLine) DetachCircle(arc Arc) {
	b.arcs.Get(arc).circle = arena.Invalid
}

// Start returns arc's current edge-start tag.
func (b *BeachLine) Start(arc Arc) Start { return b.arcs.Get(arc).start }

// SetStart overwrites arc's edge-start tag.
func (b *BeachLine) SetStart(arc Arc, start Start) {
	b.arcs.Get(arc).start = start
}

// Walk visits every live arc once in cyclic phi order, starting at head.
// It stops early if visit returns false. Used only by tests, not by the
// sweep itself.
func (b *BeachLine) Walk(visit func(Arc) bool) {
	if b.len == 0 {
		return
	}
	arc := b.head
	for i := 0; i < b.len; i++ {
		if !visit(arc) {
			return
		}
		arc = b.Next(arc)
	}
}

func (b *BeachLine) intersectWithNext(arc Arc, site sgeo.Point, sites SiteLookup) float64 {
	data := b.arcs.Get(arc)
	if data.lastTheta < site.Theta.Value {
		arcPoint := sites.CellSite(data.cell)
		nextPoint := sites.CellSite(b.arcs.Get(data.next).cell)
		data.lastTheta = site.Theta.Value
		data.lastIntersection = sgeo.Intersect(arcPoint, nextPoint, site)
	}
	return data.lastIntersection
}

func (b *BeachLine) nextSkipAt(arc Arc, level int) Arc {
	return b.arcs.Get(arc).nextSkips[level]
}

func (b *BeachLine) prevSkipAt(arc Arc, level int) Arc {
	return b.arcs.Get(arc).prevSkips[level]
}

func (b *BeachLine) setPrevSkip(arc Arc, level int, prev Arc) {
	b.arcs.Get(arc).prevSkips[level] = prev
}

func (b *BeachLine) setNextSkip(arc Arc, level int, next Arc) {
	b.arcs.Get(arc).nextSkips[level] = next
}

func (b *BeachLine) height(arc Arc) int {
	for level := 0; level < Height; level++ {
		if !b.nextSkipAt(arc, level).Valid() {
			return level
		}
	}
	return Height
}

// insertionHeight picks the level minimizing count[l]*2^l, the
// cost-balanced heuristic of spec.md §4.2 (deterministic, not random, so
// the beach line stays self-tuning without an RNG dependency).
func (b *BeachLine) insertionHeight() int {
	if b.len == 0 {
		return Height
	}
	bestHeight := 1
	bestRatio := b.levels[0]
	multiplier := 1
	for level := 0; level < Height; level++ {
		ratio := b.levels[level] * multiplier
		if ratio < bestRatio {
			bestRatio = ratio
			bestHeight = level + 1
		}
		multiplier *= 2
	}
	return bestHeight
}

func (b *BeachLine) addLinks(arc, prev, next Arc, skips *[Height]Arc) {
	data := b.arcs.Get(arc)
	data.prev = prev
	data.next = next
	b.arcs.Get(prev).next = arc
	b.arcs.Get(next).prev = arc

	height := b.insertionHeight()
	for level := 0; level < height; level++ {
		p := skips[level]
		n := b.nextSkipAt(p, level)
		if !n.Valid() {
			n = p
		}
		b.setPrevSkip(arc, level, p)
		b.setNextSkip(arc, level, n)
		b.setPrevSkip(n, level, arc)
		b.setNextSkip(p, level, arc)
		skips[level] = arc
	}
	b.len++
	b.levels[height-1]++
}

func (b *BeachLine) removeLinks(arc Arc) {
	prev, next := b.Neighbors(arc)
	b.arcs.Get(prev).next = next
	b.arcs.Get(next).prev = prev

	height := b.height(arc)
	for level := 0; level < height; level++ {
		prevSkip := b.prevSkipAt(arc, level)
		nextSkip := b.nextSkipAt(arc, level)
		b.setNextSkip(prevSkip, level, nextSkip)
		b.setPrevSkip(nextSkip, level, prevSkip)
	}
	b.len--
	b.levels[height-1]--
}
