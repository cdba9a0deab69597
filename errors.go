package seqgo

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a position argument does not denote a
	// valid position in the array. Use errors.Is to test for it.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidSnapshot is returned when snapshot data is malformed or was
	// written by an incompatible version.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrUnknownCodec is returned when a snapshot names a codec that is not
	// registered.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrUnknownCompression is returned when a snapshot names an unsupported
	// compression type.
	ErrUnknownCompression = errors.New("unknown compression type")
)

// IndexOutOfRangeError indicates a position argument outside the valid range
// of the operation that rejected it. Positions are never clamped: any access,
// insert or removal with an invalid position reports this error instead.
//
// It unwraps to ErrOutOfRange.
type IndexOutOfRangeError struct {
	Op    string // the rejecting operation, e.g. "Get"
	Index int    // the offending position
	Size  int    // the array length at the time of the call
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("seqgo: %s: index %d out of range with length %d", e.Op, e.Index, e.Size)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrOutOfRange }
