package seqgo

import (
	"bytes"
	"cmp"
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkConsistency asserts the core invariant: the index table is exactly
// the materialized traversal order of the backing store.
func checkConsistency[T any](t *testing.T, a *Array[T]) {
	t.Helper()

	require.Equal(t, a.store.Len(), a.index.Len(), "store and index length diverged")
	i := 0
	for n := range a.store.Nodes() {
		require.Same(t, n, a.index.At(i), "index[%d] does not map the %d-th node", i, i)
		i++
	}
}

func TestOf(t *testing.T) {
	a := Of(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	assert.Equal(t, 10, a.Len())
	assert.False(t, a.IsEmpty())

	v, err := a.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = a.Get(9)
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	checkConsistency(t, a)
}

func TestNew_Capacity(t *testing.T) {
	a := New[int]()
	assert.Equal(t, DefaultCapacity, a.Cap())
	assert.True(t, a.IsEmpty())

	b := New[int](WithCapacity(3))
	assert.Equal(t, 3, b.Cap())

	c := New[int](WithCapacity(-1))
	assert.Equal(t, 0, c.Cap())
}

func TestAppend_GrowthDoubles(t *testing.T) {
	a := New[int](WithCapacity(0))

	a.Append(1)
	assert.Equal(t, DefaultCapacity, a.Cap(), "growth floor")

	for i := 0; i < DefaultCapacity; i++ {
		a.Append(i)
	}
	assert.Equal(t, 2*DefaultCapacity, a.Cap(), "full table doubles")
	assert.Equal(t, DefaultCapacity+1, a.Len())
	checkConsistency(t, a)
}

func TestAppendAll_GrowsOnce(t *testing.T) {
	a := New[string](WithCapacity(2))
	a.AppendAll("a", "b", "c", "d")

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 4, a.Cap(), "batch growth sizes exactly to the batch")
	assert.Equal(t, []string{"a", "b", "c", "d"}, slices.Collect(a.Values()))
	checkConsistency(t, a)
}

func TestInsertAt(t *testing.T) {
	a := New[string]()

	// Insert at position 0 on an empty array.
	require.NoError(t, a.InsertAt(0, "elem 0"))
	assert.Equal(t, 1, a.Len())
	v, err := a.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "elem 0", v)

	// Appending via InsertAt(Len()).
	a2 := New[string]()
	a2.AppendAll("a", "b", "c")
	require.NoError(t, a2.InsertAt(3, "d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, slices.Collect(a2.Values()))

	// Insert in the middle shifts subsequent positions.
	require.NoError(t, a2.InsertAt(1, "x"))
	assert.Equal(t, []string{"a", "x", "b", "c", "d"}, slices.Collect(a2.Values()))
	checkConsistency(t, a2)
}

func TestInsertAt_OutOfRange(t *testing.T) {
	a := Of(1, 2, 3)

	err := a.InsertAt(4, 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = a.InsertAt(-1, 9)
	require.Error(t, err)

	var oor *IndexOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "InsertAt", oor.Op)
	assert.Equal(t, -1, oor.Index)
	assert.Equal(t, 3, oor.Size)
}

func TestInsertAt_GrowthIncrement(t *testing.T) {
	a := New[int](WithCapacity(2))
	a.AppendAll(1, 2)

	require.NoError(t, a.InsertAt(1, 99))
	assert.Equal(t, 2+growIncrement, a.Cap(), "positional insert grows by a fixed increment")
	checkConsistency(t, a)
}

func TestGetSet(t *testing.T) {
	a := Of("a", "b", "c")

	require.NoError(t, a.Set(1, "B"))
	v, err := a.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "B", v)

	// Out-of-range positions are errors, never clamped.
	_, err = a.Get(a.Len())
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = a.Get(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, a.Set(3, "x"), ErrOutOfRange)
}

func TestFrontBack(t *testing.T) {
	a := New[int]()

	_, ok := a.Front()
	assert.False(t, ok)
	_, ok = a.Back()
	assert.False(t, ok)

	a.AppendAll(1, 2, 3)
	front, ok := a.Front()
	assert.True(t, ok)
	assert.Equal(t, 1, front)
	back, ok := a.Back()
	assert.True(t, ok)
	assert.Equal(t, 3, back)
}

func TestRemoveAt(t *testing.T) {
	a := Of("a", "b", "c", "d")

	v, err := a.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.Equal(t, []string{"a", "c", "d"}, slices.Collect(a.Values()))
	checkConsistency(t, a)

	_, err = a.RemoveAt(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRemove_First(t *testing.T) {
	a := Of("a", "b", "c", "b")

	removed := Remove(a, "b", false)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"a", "c", "b"}, slices.Collect(a.Values()))
	checkConsistency(t, a)
}

func TestRemove_All(t *testing.T) {
	a := Of("a", "b", "c", "b")

	removed := Remove(a, "b", true)

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"a", "c"}, slices.Collect(a.Values()))
	checkConsistency(t, a)
}

func TestRemove_AdjacentMatches(t *testing.T) {
	// The scan must not advance past a removal site, or it would skip the
	// element shifted into it.
	a := Of(1, 2, 2, 2, 3)

	removed := Remove(a, 2, true)

	assert.Equal(t, 3, removed)
	assert.Equal(t, []int{1, 3}, slices.Collect(a.Values()))
	checkConsistency(t, a)
}

func TestRemoveFunc(t *testing.T) {
	a := Of(1, 2, 3, 4, 5, 6)

	removed := a.RemoveFunc(func(v int) bool { return v%2 == 0 }, true)

	assert.Equal(t, 3, removed)
	assert.Equal(t, []int{1, 3, 5}, slices.Collect(a.Values()))

	assert.Equal(t, 0, a.RemoveFunc(func(v int) bool { return v > 100 }, true))
}

func TestClear(t *testing.T) {
	a := Of(1, 2, 3)
	capBefore := a.Cap()

	a.Clear()

	assert.Equal(t, 0, a.Len())
	assert.True(t, a.IsEmpty())
	assert.Equal(t, capBefore, a.Cap(), "capacity is retained for reuse")

	a.Append(7)
	v, err := a.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	checkConsistency(t, a)
}

func TestShrinkTo(t *testing.T) {
	a := Of(1, 2, 3, 4, 5)

	a.ShrinkTo(10) // no-op
	assert.Equal(t, 5, a.Len())

	a.ShrinkTo(2)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, a.Cap(), "table shrinks to the new size")
	assert.Equal(t, []int{1, 2}, slices.Collect(a.Values()))
	checkConsistency(t, a)

	a.ShrinkTo(0)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 0, a.Cap())
}

func TestShrinkTo_LogsShrink(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&out, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	a := New[int](WithCapacity(5), WithLogger(logger))
	a.AppendAll(1, 2, 3, 4, 5)

	a.ShrinkTo(2)

	assert.True(t, strings.Contains(out.String(), "index table shrunk"), "got log: %s", out.String())
	assert.False(t, strings.Contains(out.String(), "index table grown"), "got log: %s", out.String())
}

func TestSort(t *testing.T) {
	a := Of("c", "a", "b")

	Sort(a)

	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(a.Values()))
	checkConsistency(t, a)
}

func TestSortFunc_Descending(t *testing.T) {
	a := Of("c", "a", "b")

	a.SortFunc(func(x, y string) int { return cmp.Compare(y, x) })

	assert.Equal(t, []string{"c", "b", "a"}, slices.Collect(a.Values()))
	checkConsistency(t, a)
}

func TestSortFunc_Stable(t *testing.T) {
	type rec struct {
		key int
		tag string
	}
	a := Of(
		rec{2, "first-2"},
		rec{1, "first-1"},
		rec{2, "second-2"},
		rec{1, "second-1"},
	)

	a.SortFunc(func(x, y rec) int { return cmp.Compare(x.key, y.key) })

	assert.Equal(t, []rec{
		{1, "first-1"},
		{1, "second-1"},
		{2, "first-2"},
		{2, "second-2"},
	}, slices.Collect(a.Values()))
}

func TestAddressStability(t *testing.T) {
	a := Of("a", "b", "c", "d")

	// Capture the node handles behind each position.
	nodeA := a.index.At(0)
	nodeC := a.index.At(2)

	// Insert and remove around them; the kept elements must keep their nodes.
	require.NoError(t, a.InsertAt(1, "x")) // [a x b c d]
	_, err := a.RemoveAt(4)                // [a x b c]
	require.NoError(t, err)
	Remove(a, "b", false) // [a x c]

	// Only positions changed, never the storage.
	assert.Same(t, nodeA, a.index.At(0))
	assert.Equal(t, "a", nodeA.Value)
	assert.Same(t, nodeC, a.index.At(2))
	assert.Equal(t, "c", nodeC.Value)
	checkConsistency(t, a)
}

func TestAddressStability_AcrossGrowth(t *testing.T) {
	a := New[int](WithCapacity(2))
	a.AppendAll(1, 2)
	n0 := a.index.At(0)

	// Force several growth events.
	for i := 0; i < 100; i++ {
		a.Append(i)
	}

	assert.Same(t, n0, a.index.At(0), "growth must not relocate elements")
	checkConsistency(t, a)
}

func TestClone(t *testing.T) {
	orig := Of(1, 2, 3)

	clone := orig.Clone()

	require.Equal(t, orig.Len(), clone.Len())
	assert.Equal(t, orig.Cap(), clone.Cap())
	for i := 0; i < orig.Len(); i++ {
		ov, _ := orig.Get(i)
		cv, _ := clone.Get(i)
		assert.Equal(t, ov, cv)
	}

	// Mutating the clone never touches the original.
	clone.Append(4)
	require.NoError(t, clone.Set(0, 99))
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(orig.Values()))
	checkConsistency(t, clone)
	checkConsistency(t, orig)
}

func TestCloneFrom(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(7, 8)

	a.CloneFrom(b)

	assert.Equal(t, []int{7, 8}, slices.Collect(a.Values()))
	b.Append(9)
	assert.Equal(t, []int{7, 8}, slices.Collect(a.Values()), "deep copy")

	a.CloneFrom(a) // self-assignment is a no-op
	assert.Equal(t, []int{7, 8}, slices.Collect(a.Values()))
}

func TestMoveFrom(t *testing.T) {
	src := Of("x", "y", "z")
	node := src.index.At(1)
	dst := New[string]()

	dst.MoveFrom(src)

	assert.Equal(t, []string{"x", "y", "z"}, slices.Collect(dst.Values()))
	assert.Same(t, node, dst.index.At(1), "move transfers storage wholesale")

	// The source behaves as freshly constructed and empty.
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, src.Cap())
	src.Append("new")
	assert.Equal(t, 1, src.Len())
	assert.Equal(t, []string{"x", "y", "z"}, slices.Collect(dst.Values()))
	checkConsistency(t, src)
	checkConsistency(t, dst)
}

func TestMove(t *testing.T) {
	a := Of(1, 2, 3)

	moved := a.Move()

	assert.Equal(t, []int{1, 2, 3}, slices.Collect(moved.Values()))
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Cap())
}

func TestAll(t *testing.T) {
	a := Of("a", "b", "c")

	var idx []int
	var vals []string
	for i, v := range a.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []string{"a", "b", "c"}, vals)

	// Early break is allowed; a fresh traversal restarts from the front.
	for i := range a.Values() {
		_ = i
		break
	}
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(a.Values()))
}

func TestRandomizedConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(4711))
	a := New[int](WithCapacity(4))
	var mirror []int

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(6); {
		case op == 0 || a.Len() == 0:
			v := rng.Intn(50)
			a.Append(v)
			mirror = append(mirror, v)
		case op == 1:
			i := rng.Intn(a.Len() + 1)
			v := rng.Intn(50)
			require.NoError(t, a.InsertAt(i, v))
			mirror = slices.Insert(mirror, i, v)
		case op == 2:
			i := rng.Intn(a.Len())
			got, err := a.RemoveAt(i)
			require.NoError(t, err)
			require.Equal(t, mirror[i], got)
			mirror = slices.Delete(mirror, i, i+1)
		case op == 3:
			v := rng.Intn(50)
			removed := Remove(a, v, true)
			kept := slices.DeleteFunc(mirror, func(x int) bool { return x == v })
			require.Equal(t, len(mirror)-len(kept), removed)
			mirror = kept
		case op == 4:
			Sort(a)
			slices.Sort(mirror)
		default:
			i := rng.Intn(a.Len())
			v := rng.Intn(50)
			require.NoError(t, a.Set(i, v))
			mirror[i] = v
		}

		require.Equal(t, len(mirror), a.Len())
		if len(mirror) > 0 {
			require.Equal(t, mirror, slices.Collect(a.Values()))
		}
	}

	checkConsistency(t, a)
}

func TestIndexOutOfRangeError_Message(t *testing.T) {
	err := &IndexOutOfRangeError{Op: "Get", Index: 5, Size: 3}
	assert.Equal(t, "seqgo: Get: index 5 out of range with length 3", err.Error())
	assert.True(t, errors.Is(err, ErrOutOfRange))
}
