// Package table implements the position index of the container: a growable
// table mapping a dense position 0..len to a location handle inside the
// backing store. Capacity and length are tracked explicitly, and growth is an
// explicit allocate-and-copy step, never an implicit append.
//
// The table trusts its caller: positions are preconditions, not checked
// errors. The container's public API validates positions before calling in.
package table

import "iter"

// Table maps positions to location handles of type H.
type Table[H any] struct {
	slots []H
	len   int
}

// New returns a table with the given capacity and zero length.
func New[H any](capacity int) *Table[H] {
	if capacity < 0 {
		capacity = 0
	}
	return &Table[H]{slots: make([]H, capacity)}
}

// Len returns the number of live mappings.
func (t *Table[H]) Len() int { return t.len }

// Cap returns the allocated capacity of the table.
func (t *Table[H]) Cap() int { return len(t.slots) }

// At returns the handle mapped at position i. Precondition: i < Len().
func (t *Table[H]) At(i int) H { return t.slots[i] }

// Set overwrites the handle at position i. Precondition: i < Len().
func (t *Table[H]) Set(i int, h H) { t.slots[i] = h }

// Append records h at position Len(). Precondition: Len() < Cap().
func (t *Table[H]) Append(h H) {
	t.slots[t.len] = h
	t.len++
}

// InsertAt shifts mappings at positions >= i right by one slot and records h
// at position i. Preconditions: i <= Len(), Len() < Cap().
func (t *Table[H]) InsertAt(i int, h H) {
	copy(t.slots[i+1:t.len+1], t.slots[i:t.len])
	t.slots[i] = h
	t.len++
}

// RemoveAt shifts mappings at positions > i left by one slot, dropping the
// mapping at position i. Precondition: i < Len().
func (t *Table[H]) RemoveAt(i int) {
	copy(t.slots[i:t.len-1], t.slots[i+1:t.len])
	t.len--
	var zero H
	t.slots[t.len] = zero // release the handle
}

// GrowTo reallocates the table to capacity n, copying the first
// min(n, Len()) mappings and discarding the rest. The old table is dropped.
func (t *Table[H]) GrowTo(n int) {
	if n < 0 {
		n = 0
	}
	next := make([]H, n)
	bound := t.len
	if n < bound {
		bound = n
	}
	copy(next, t.slots[:bound])
	t.slots = next
	t.len = bound
}

// Reset drops every mapping but keeps the allocated capacity for reuse.
func (t *Table[H]) Reset() {
	var zero H
	for i := 0; i < t.len; i++ {
		t.slots[i] = zero
	}
	t.len = 0
}

// RebuildFrom recomputes the whole mapping from a traversal of the backing
// store, recording each yielded handle at its traversal position. The
// sequence must yield at most Cap() handles.
func (t *Table[H]) RebuildFrom(seq iter.Seq[H]) {
	i := 0
	for h := range seq {
		t.slots[i] = h
		i++
	}
	for j := i; j < t.len; j++ {
		var zero H
		t.slots[j] = zero
	}
	t.len = i
}

// All yields the live handles in position order.
func (t *Table[H]) All() iter.Seq[H] {
	return func(yield func(H) bool) {
		for i := 0; i < t.len; i++ {
			if !yield(t.slots[i]) {
				return
			}
		}
	}
}
