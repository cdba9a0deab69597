package seqgo

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/seqgo/codec"
)

// snapshotMagic identifies a seqgo snapshot stream.
var snapshotMagic = [4]byte{'S', 'Q', 'G', 'O'}

// snapshotVersion is the current snapshot format version.
const snapshotVersion uint8 = 1

// maxSnapshotElementSize bounds a single encoded element. Lengths beyond it
// are treated as corruption rather than attempted as allocations.
const maxSnapshotElementSize = 1 << 30

// CompressionType defines the compression algorithm used for the snapshot
// body.
type CompressionType uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 stream compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZstd indicates ZSTD stream compression (better ratio).
	CompressionZstd CompressionType = 2
)

type snapshotOptions struct {
	codec       codec.Codec
	compression CompressionType
}

// SnapshotOption configures how a snapshot is written.
type SnapshotOption func(*snapshotOptions)

// WithSnapshotCodec sets the codec used to encode elements.
// If nil is passed, codec.Default is used.
func WithSnapshotCodec(c codec.Codec) SnapshotOption {
	return func(o *snapshotOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the compression applied to the snapshot body.
func WithCompression(ct CompressionType) SnapshotOption {
	return func(o *snapshotOptions) {
		o.compression = ct
	}
}

// Snapshot writes the array to w in a self-describing binary format.
//
// Layout: [Magic: 4 bytes] [Version: 1 byte] [Compression: 1 byte]
// [CodecNameLen: 1 byte] [CodecName] [Body].
// Body (possibly compressed): [Count: 8 bytes] [Element...].
// Element: [Len: 4 bytes] [codec-encoded bytes].
//
// The header records the codec name and compression type, so Restore needs
// no out-of-band configuration.
func (a *Array[T]) Snapshot(w io.Writer, optFns ...SnapshotOption) error {
	o := snapshotOptions{
		codec:       codec.Default,
		compression: CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	err := a.writeSnapshot(w, o)
	if a.logger != nil {
		a.logger.LogSnapshot(a.Len(), o.codec.Name(), err)
	}
	return err
}

func (a *Array[T]) writeSnapshot(w io.Writer, o snapshotOptions) error {
	// Set up the body writer first so an invalid option fails before any
	// header bytes reach w. Compressors write nothing until the body flows.
	var (
		body   io.Writer = w
		closer io.Closer
	)
	switch o.compression {
	case CompressionNone:
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		body, closer = zw, zw
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("seqgo: create compressor: %w", err)
		}
		body, closer = zw, zw
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCompression, o.compression)
	}
	// The compressor must be closed on every path: zstd keeps worker
	// goroutines alive until Close.
	closed := false
	defer func() {
		if closer != nil && !closed {
			_ = closer.Close()
		}
	}()

	hw := bufio.NewWriter(w)

	if _, err := hw.Write(snapshotMagic[:]); err != nil {
		return err
	}
	if err := hw.WriteByte(snapshotVersion); err != nil {
		return err
	}
	if err := hw.WriteByte(byte(o.compression)); err != nil {
		return err
	}
	name := o.codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("seqgo: codec name too long: %q", name)
	}
	if err := hw.WriteByte(byte(len(name))); err != nil {
		return err
	}
	if _, err := hw.WriteString(name); err != nil {
		return err
	}
	// The body may be compressed; the header must be flushed plain first.
	if err := hw.Flush(); err != nil {
		return err
	}

	bw := bufio.NewWriter(body)

	if err := binary.Write(bw, binary.LittleEndian, uint64(a.Len())); err != nil {
		return err
	}
	for v := range a.Values() {
		data, err := o.codec.Marshal(v)
		if err != nil {
			return fmt.Errorf("seqgo: encode element: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(data))); err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if closer != nil {
		closed = true
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Restore reads a snapshot written by Snapshot and returns the restored
// array. The codec and compression are selected from the snapshot header.
// Constructor options apply to the returned array; its capacity is grown to
// the element count when that is larger.
func Restore[T any](r io.Reader, optFns ...Option) (*Array[T], error) {
	a := New[T](optFns...)

	codecName, err := a.readSnapshot(r)
	if a.logger != nil {
		a.logger.LogRestore(a.Len(), codecName, err)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// readSnapshot fills a from r and returns the codec name recorded in the
// header ("" when the header could not be read that far).
func (a *Array[T]) readSnapshot(r io.Reader) (string, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return "", fmt.Errorf("%w: short header: %w", ErrInvalidSnapshot, err)
	}
	if magic != snapshotMagic {
		return "", fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	version, err := br.ReadByte()
	if err != nil {
		return "", fmt.Errorf("%w: short header: %w", ErrInvalidSnapshot, err)
	}
	if version != snapshotVersion {
		return "", fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, version)
	}
	compression, err := br.ReadByte()
	if err != nil {
		return "", fmt.Errorf("%w: short header: %w", ErrInvalidSnapshot, err)
	}
	nameLen, err := br.ReadByte()
	if err != nil {
		return "", fmt.Errorf("%w: short header: %w", ErrInvalidSnapshot, err)
	}
	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(br, nameBytes); err != nil {
		return "", fmt.Errorf("%w: short header: %w", ErrInvalidSnapshot, err)
	}
	c, ok := codec.ByName(string(nameBytes))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodec, string(nameBytes))
	}
	codecName := c.Name()

	var body io.Reader
	switch CompressionType(compression) {
	case CompressionNone:
		body = br
	case CompressionLZ4:
		body = lz4.NewReader(br)
	case CompressionZstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return codecName, fmt.Errorf("seqgo: create decompressor: %w", err)
		}
		defer dec.Close()
		body = dec
	default:
		return codecName, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}

	var count uint64
	if err := binary.Read(body, binary.LittleEndian, &count); err != nil {
		return codecName, fmt.Errorf("%w: short body: %w", ErrInvalidSnapshot, err)
	}
	// A count that does not fit in int cannot come from a valid snapshot;
	// treat it as corruption like an oversized element.
	if count > math.MaxInt {
		return codecName, fmt.Errorf("%w: element count %d", ErrInvalidSnapshot, count)
	}
	if int(count) > a.Cap() {
		a.grow(int(count))
	}

	var buf []byte
	for i := uint64(0); i < count; i++ {
		var size uint32
		if err := binary.Read(body, binary.LittleEndian, &size); err != nil {
			return codecName, fmt.Errorf("%w: short element header: %w", ErrInvalidSnapshot, err)
		}
		if size > maxSnapshotElementSize {
			return codecName, fmt.Errorf("%w: element size %d", ErrInvalidSnapshot, size)
		}
		if cap(buf) < int(size) {
			buf = make([]byte, size)
		}
		buf = buf[:size]
		if _, err := io.ReadFull(body, buf); err != nil {
			return codecName, fmt.Errorf("%w: short element: %w", ErrInvalidSnapshot, err)
		}
		var v T
		if err := c.Unmarshal(buf, &v); err != nil {
			return codecName, fmt.Errorf("seqgo: decode element: %w", err)
		}
		a.index.Append(a.store.PushBack(v))
	}

	return codecName, nil
}
