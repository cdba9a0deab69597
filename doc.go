// Package seqgo provides an index-addressable dynamic sequence with
// reference stability.
//
// A slice gives O(1) access by position but may relocate every element when
// it grows or when something is inserted or removed in the middle. A linked
// list gives stable element storage but only sequential access. seqgo's
// Array gives both: O(1) positional access and the guarantee that an
// element's storage never moves until that element is removed.
//
// It does this by pairing a node-based backing store with a position index —
// a growable table mapping each position to its node. Mutations edit the
// store in O(1) given the node, then repair the index, either by shifting a
// contiguous run of mappings (insert, remove) or by a full rebuild (sort).
//
// # Quick Start
//
//	a := seqgo.Of("a", "b", "c")
//	a.Append("d")
//	_ = a.InsertAt(0, "z")        // ["z" "a" "b" "c" "d"]
//	v, _ := a.Get(2)              // "b", O(1)
//	_, _ = a.RemoveAt(0)          // ["a" "b" "c" "d"]
//	seqgo.Remove(a, "b", false)   // remove first "b"
//	seqgo.Sort(a)                 // natural order, stable
//
//	for i, v := range a.All() {
//	    fmt.Println(i, v)
//	}
//
// # Snapshots
//
// An Array can be written to and restored from an io.Writer/io.Reader using
// a self-describing binary format with pluggable codecs and optional
// compression:
//
//	var buf bytes.Buffer
//	_ = a.Snapshot(&buf, seqgo.WithCompression(seqgo.CompressionZstd))
//	b, _ := seqgo.Restore[string](&buf)
//
// # Concurrency
//
// An Array performs no internal locking. Callers that share one instance
// across goroutines must synchronize externally.
package seqgo
