// Package arena provides an append-only slot allocator with free-list reuse,
// the Go counterpart of original_source's ideal::IdVec<Tag, T>.
package arena

// Handle indexes a slot in an Arena. Slots are numbered from 0, so the
// zero-value Handle refers to the first slot; use Invalid to represent
// "no handle".
type Handle int32

// Invalid is the negative sentinel handle used to mean "none" (analogous to
// ArcStart::None / Start::invalid() in the Rust source).
const Invalid Handle = -1

// Valid reports whether h could reference a live slot. It says nothing
// about whether the slot has actually been removed — callers must never
// compare a stale handle against a live one for "have I seen this before"
// reasoning, only for direct equality of two handles known to be live.
func (h Handle) Valid() bool { return h >= 0 }

// Arena is a generic slot store with O(1) allocation and removal via a
// free-list, bounding peak memory at O(n) live items the way spec.md §5
// requires for arcs and circle records.
type Arena[T any] struct {
	items []T
	free  []Handle
}

// New allocates a slot holding value and returns its handle, reusing a
// freed slot when one is available.
func (a *Arena[T]) New(value T) Handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.items[h] = value
		return h
	}
	a.items = append(a.items, value)
	return Handle(len(a.items) - 1)
}

// Get returns a pointer to the slot's contents. The caller is responsible
// for only dereferencing handles known to be live.
func (a *Arena[T]) Get(h Handle) *T {
	return &a.items[h]
}

// Remove returns a slot to the free-list. The handle must not be used
// again except for equality comparison against other handles captured
// before the removal.
func (a *Arena[T]) Remove(h Handle) {
	a.free = append(a.free, h)
}

// Len returns the number of live (non-freed) slots.
func (a *Arena[T]) Len() int {
	return len(a.items) - len(a.free)
}

// Reset discards all slots, used between Lloyd relaxation passes.
func (a *Arena[T]) Reset() {
	a.items = a.items[:0]
	a.free = a.free[:0]
}
