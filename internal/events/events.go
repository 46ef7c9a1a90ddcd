// Package events implements the sweep's dual event queue: a min-heap by
// colatitude holding site and circle events, with lazy invalidation of
// circle records per spec.md §4.6 and §4.4's "Invalidation" rule.
package events

import (
	"container/heap"

	"github.com/golang/geo/r3"

	"github.com/RomanAkberov/spherical-voronoi/internal/arena"
)

// Kind distinguishes a site event from a circle event.
type Kind int

const (
	Site Kind = iota
	Circle
)

// CircleRecord owns a circle event's payload: the arc predicted to
// vanish, the Cartesian center (the prospective Voronoi vertex), and a
// validity flag set by Invalidate. Records are never removed from the
// heap directly — Pop skips invalidated ones (spec.md §3, §4.4).
type CircleRecord struct {
	Arc     arena.Handle
	Center  r3.Vector
	Invalid bool
}

// Event is a queue entry: a site event carries the site's int index in
// Site (the builder resolves it back to the originating cell by index),
// a circle event carries a handle into the queue's circle-record arena.
type Event struct {
	Theta  float64
	Kind   Kind
	Site   int
	Circle arena.Handle
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Theta != h[j].Theta {
		return h[i].Theta < h[j].Theta
	}
	// Ties favor circle events over site events (spec.md §4.6: "a
	// site-vs-circle tie-break favoring circles is recommended").
	return h[i].Kind == Circle && h[j].Kind == Site
}
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(Event)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is the min-heap-by-theta dual event queue.
type Queue struct {
	heap    eventHeap
	circles arena.Arena[CircleRecord]
}

// PushSite enqueues a site event for the site at the given index and
// colatitude.
func (q *Queue) PushSite(index int, theta float64) {
	heap.Push(&q.heap, Event{Theta: theta, Kind: Site, Site: index})
}

// PushCircle creates a circle record for arc vanishing at theta with the
// given center, enqueues it, and returns its handle so the caller (the
// beach line, via the builder) can attach it to the vanishing arc for
// later invalidation.
func (q *Queue) PushCircle(arc arena.Handle, center r3.Vector, theta float64) arena.Handle {
	handle := q.circles.New(CircleRecord{Arc: arc, Center: center})
	heap.Push(&q.heap, Event{Theta: theta, Kind: Circle, Circle: handle})
	return handle
}

// Invalidate flags a circle record so Pop will skip it. The record stays
// in the arena (and the heap) — that is the point of lazy invalidation:
// O(1) here, no heap search.
func (q *Queue) Invalidate(handle arena.Handle) {
	q.circles.Get(handle).Invalid = true
}

// Circle returns a circle record by handle.
func (q *Queue) Circle(handle arena.Handle) CircleRecord {
	return *q.circles.Get(handle)
}

// Pop returns the next valid event in ascending theta order, silently
// discarding invalidated circle events along the way. The second return
// value is false once the queue is exhausted.
func (q *Queue) Pop() (Event, bool) {
	for q.heap.Len() > 0 {
		event := heap.Pop(&q.heap).(Event)
		if event.Kind == Circle && q.circles.Get(event.Circle).Invalid {
			continue
		}
		return event, true
	}
	return Event{}, false
}

// Len reports how many entries remain in the heap, including any not-yet
// discarded invalid circle events.
func (q *Queue) Len() int { return q.heap.Len() }

// Clear empties the queue, used between Lloyd relaxation passes.
func (q *Queue) Clear() {
	q.heap = q.heap[:0]
	q.circles.Reset()
}
