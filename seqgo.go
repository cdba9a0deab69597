package seqgo

import (
	"cmp"
	"iter"

	"github.com/hupe1980/seqgo/internal/store"
	"github.com/hupe1980/seqgo/internal/table"
)

// Array is an index-addressable dynamic sequence with reference stability:
// positional access is O(1) like a slice, and elements never relocate once
// inserted, like a linked list. Inserting or removing an element shifts the
// positions of the elements after it but never their storage, so a node
// handle (and any pointer into an element) stays valid until that element is
// explicitly removed.
//
// Internally an Array combines a node-based backing store with a position
// index table mapping each position to its node. Every mutating operation
// performs the structural edit and the index repair together; the two
// structures are never exposed separately.
//
// An Array must be created with New, Of or Restore. It is not safe for
// concurrent use without external synchronization.
type Array[T any] struct {
	store  *store.List[T]
	index  *table.Table[*store.Node[T]]
	logger *Logger
}

// New creates an empty Array.
//
//	a := seqgo.New[string](seqgo.WithCapacity(100))
func New[T any](opts ...Option) *Array[T] {
	o := applyOptions(opts)
	return &Array[T]{
		store:  store.New[T](),
		index:  table.New[*store.Node[T]](o.capacity),
		logger: o.logger,
	}
}

// Of creates an Array holding the given values in order, sized to fit them
// exactly.
func Of[T any](values ...T) *Array[T] {
	a := New[T](WithCapacity(len(values)))
	a.AppendAll(values...)
	return a
}

// Len returns the number of elements. O(1).
func (a *Array[T]) Len() int { return a.index.Len() }

// IsEmpty reports whether the array holds no elements.
func (a *Array[T]) IsEmpty() bool { return a.index.Len() == 0 }

// Cap returns the current capacity of the position index.
func (a *Array[T]) Cap() int { return a.index.Cap() }

// Append adds v at the end of the array. Amortized O(1): when the position
// index is full its capacity doubles, with a floor of DefaultCapacity.
func (a *Array[T]) Append(v T) {
	if a.index.Len() == a.index.Cap() {
		newCap := a.index.Cap() * 2
		if newCap == 0 {
			newCap = DefaultCapacity
		}
		a.grow(newCap)
	}
	a.index.Append(a.store.PushBack(v))
}

// AppendAll adds the given values at the end of the array, growing the
// position index at most once for the whole batch.
func (a *Array[T]) AppendAll(values ...T) {
	if need := a.index.Len() + len(values); need > a.index.Cap() {
		a.grow(need)
	}
	for _, v := range values {
		a.index.Append(a.store.PushBack(v))
	}
}

// InsertAt inserts v before the element at position i, so that the new
// element ends up at position i. i may equal Len(), which appends. The
// structural edit is O(1); repairing the position index shifts the mappings
// after i, which is O(n) worst case.
//
// When the index is full it grows by a fixed increment rather than doubling:
// positional inserts are already O(n), so linear growth just bounds wasted
// space.
func (a *Array[T]) InsertAt(i int, v T) error {
	size := a.index.Len()
	if i < 0 || i > size {
		return &IndexOutOfRangeError{Op: "InsertAt", Index: i, Size: size}
	}
	if size+1 > a.index.Cap() {
		a.grow(a.index.Cap() + growIncrement)
	}

	var at *store.Node[T] // nil inserts at the tail
	if i < size {
		at = a.index.At(i)
	}
	a.index.InsertAt(i, a.store.InsertBefore(v, at))

	return nil
}

// Get returns the element at position i. O(1).
func (a *Array[T]) Get(i int) (T, error) {
	if i < 0 || i >= a.index.Len() {
		var zero T
		return zero, &IndexOutOfRangeError{Op: "Get", Index: i, Size: a.index.Len()}
	}
	return a.index.At(i).Value, nil
}

// Set replaces the element at position i with v. O(1).
func (a *Array[T]) Set(i int, v T) error {
	if i < 0 || i >= a.index.Len() {
		return &IndexOutOfRangeError{Op: "Set", Index: i, Size: a.index.Len()}
	}
	a.index.At(i).Value = v
	return nil
}

// Front returns the first element, if any. O(1).
func (a *Array[T]) Front() (T, bool) {
	if n := a.store.Front(); n != nil {
		return n.Value, true
	}
	var zero T
	return zero, false
}

// Back returns the last element, if any. O(1).
func (a *Array[T]) Back() (T, bool) {
	if n := a.store.Back(); n != nil {
		return n.Value, true
	}
	var zero T
	return zero, false
}

// RemoveAt removes and returns the element at position i. The structural
// edit is O(1); the index shift is O(n) worst case. Elements at other
// positions keep their storage.
func (a *Array[T]) RemoveAt(i int) (T, error) {
	if i < 0 || i >= a.index.Len() {
		var zero T
		return zero, &IndexOutOfRangeError{Op: "RemoveAt", Index: i, Size: a.index.Len()}
	}
	n := a.index.At(i)
	a.index.RemoveAt(i)
	return a.store.Remove(n), nil
}

// RemoveFunc removes elements for which match returns true and reports how
// many were removed. If all is false, it stops after the first match. The
// scan does not advance past a removal site, since the next element shifts
// into the freed position.
func (a *Array[T]) RemoveFunc(match func(T) bool, all bool) int {
	removed := 0
	for i := 0; i < a.index.Len(); {
		n := a.index.At(i)
		if !match(n.Value) {
			i++
			continue
		}
		a.index.RemoveAt(i)
		a.store.Remove(n)
		removed++
		if !all {
			break
		}
	}
	return removed
}

// Remove removes elements equal to value from a and reports how many were
// removed. If all is false, only the first occurrence is removed.
func Remove[T comparable](a *Array[T], value T, all bool) int {
	return a.RemoveFunc(func(v T) bool { return v == value }, all)
}

// Clear removes all elements. The position index keeps its capacity for
// reuse.
func (a *Array[T]) Clear() {
	a.store.Init()
	a.index.Reset()
}

// ShrinkTo reduces the array to at most n elements by removing from the
// back, then shrinks the position index capacity to exactly n. It is a
// no-op when n >= Len().
func (a *Array[T]) ShrinkTo(n int) {
	if n < 0 {
		n = 0
	}
	if n >= a.index.Len() {
		return
	}
	for a.index.Len() > n {
		last := a.index.Len() - 1
		node := a.index.At(last)
		a.index.RemoveAt(last)
		a.store.Remove(node)
	}
	from := a.index.Cap()
	a.index.GrowTo(n)
	if a.logger != nil {
		a.logger.LogShrink(from, n)
	}
}

// SortFunc sorts the array in place using a stable merge sort over the
// backing store. Nodes are relinked, never copied, so element storage stays
// put; the position index is rebuilt afterwards since every position may
// have changed. cmp must return a negative number when x sorts before y, as
// in slices.SortFunc.
func (a *Array[T]) SortFunc(cmp func(x, y T) int) {
	a.store.SortFunc(cmp)
	a.index.RebuildFrom(a.store.Nodes())
	if a.logger != nil {
		a.logger.LogRebuild(a.index.Len())
	}
}

// Sort sorts the array in the natural order of its element type.
func Sort[T cmp.Ordered](a *Array[T]) {
	a.SortFunc(cmp.Compare)
}

// Clone returns a deep copy of the array: element values are copied into a
// fresh backing store and a fresh position index of the same capacity is
// built against it. Mutating the clone never affects the original.
func (a *Array[T]) Clone() *Array[T] {
	clone := &Array[T]{
		store:  store.New[T](),
		index:  table.New[*store.Node[T]](a.index.Cap()),
		logger: a.logger,
	}
	for n := range a.store.Nodes() {
		clone.index.Append(clone.store.PushBack(n.Value))
	}
	return clone
}

// CloneFrom replaces the contents of a with a deep copy of other. The new
// store and index are built completely before a is touched, so a failure
// while building (an allocation panic) leaves a unmodified.
func (a *Array[T]) CloneFrom(other *Array[T]) {
	if a == other {
		return
	}
	next := other.Clone()
	a.store, a.index = next.store, next.index
}

// MoveFrom transfers the contents of src to a in O(1), dropping a's previous
// contents. Afterwards src behaves as a freshly constructed empty array with
// zero capacity; node handles into the moved elements remain valid and now
// belong to a.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	a.store, a.index = src.store, src.index
	src.store = store.New[T]()
	src.index = table.New[*store.Node[T]](0)
}

// Move transfers the contents of a into a new Array in O(1), leaving a
// empty with zero capacity.
func (a *Array[T]) Move() *Array[T] {
	dst := &Array[T]{
		store:  store.New[T](),
		index:  table.New[*store.Node[T]](0),
		logger: a.logger,
	}
	dst.MoveFrom(a)
	return dst
}

// All yields position/element pairs in order. The traversal is a live view
// over the backing store: structurally mutating the array during iteration
// invalidates the remaining traversal, though previously obtained elements
// stay valid unless they were removed.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for n := a.store.Front(); n != nil; n = n.Next() {
			if !yield(i, n.Value) {
				return
			}
			i++
		}
	}
}

// Values yields the elements in order. Same invalidation rules as All.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := a.store.Front(); n != nil; n = n.Next() {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// grow reallocates the position index to capacity n.
func (a *Array[T]) grow(n int) {
	from := a.index.Cap()
	a.index.GrowTo(n)
	if a.logger != nil {
		a.logger.LogGrow(from, n)
	}
}
