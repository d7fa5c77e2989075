package shmframe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Header layout constants.
const (
	rankSize   = 4  // u32 rank field
	dimSize    = 4  // u32 per shape dimension
	dtypeSize  = 16 // ASCII dtype name, NUL-padded
	endianSize = 1  // ASCII endianness marker

	// MaxRank bounds the rank field so a corrupt header cannot demand an
	// absurd shape read.
	MaxRank = 32
)

// Header decode/encode errors.
var (
	// ErrTruncated is returned when the buffer ends inside a header field.
	ErrTruncated = errors.New("shmframe: truncated header")

	// ErrBadRank is returned for a rank of zero or above MaxRank.
	ErrBadRank = errors.New("shmframe: invalid rank")

	// ErrUnknownDType is returned for a dtype name with no known item size.
	ErrUnknownDType = errors.New("shmframe: unknown dtype")

	// ErrBadEndian is returned for an unrecognized endianness marker.
	ErrBadEndian = errors.New("shmframe: invalid endianness marker")

	// ErrShapeOverflow is returned when product(shape)*itemsize overflows.
	ErrShapeOverflow = errors.New("shmframe: shape product overflows")

	// ErrBlockTooSmall is returned when the declared payload does not fit
	// inside the block.
	ErrBlockTooSmall = errors.New("shmframe: block smaller than declared payload")
)

// dtypeItemSizes maps dtype names to their element size in bytes. Names
// follow the array-library convention used by consumers.
var dtypeItemSizes = map[string]int{
	"uint8":   1,
	"int8":    1,
	"uint16":  2,
	"int16":   2,
	"uint32":  4,
	"int32":   4,
	"uint64":  8,
	"int64":   8,
	"float32": 4,
	"float64": 8,
}

// Endianness markers.
const (
	markerLittle = '<'
	markerBig    = '>'
	markerNative = '='
	markerNone   = '|' // single-byte types; order is irrelevant
)

// hostLittleEndian reports whether the host stores integers little-endian.
func hostLittleEndian() bool {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	return b[0] == 1
}

// Header describes the array stored in a block's payload region.
type Header struct {
	// Shape is the array shape; rank is len(Shape).
	Shape []uint32

	// DType is the element type name, e.g. "uint8" or "float32".
	DType string

	// Order is the payload element byte order resolved from the
	// endianness marker.
	Order binary.ByteOrder
}

// HeaderSize returns the encoded header size for the given rank.
func HeaderSize(rank int) int {
	return rankSize + rank*dimSize + dtypeSize + endianSize
}

// PayloadOffset returns the byte offset of the payload region:
// 4 + rank*4 + 16 + 1.
func (h Header) PayloadOffset() int {
	return HeaderSize(len(h.Shape))
}

// ItemSize returns the element size in bytes for the header's dtype.
func (h Header) ItemSize() (int, error) {
	n, ok := dtypeItemSizes[h.DType]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDType, h.DType)
	}
	return n, nil
}

// ElemCount returns product(shape).
func (h Header) ElemCount() uint64 {
	n := uint64(1)
	for _, d := range h.Shape {
		n *= uint64(d)
	}
	return n
}

// PayloadSize returns product(shape) × itemsize(dtype) in bytes, guarding
// against overflow.
func (h Header) PayloadSize() (int, error) {
	item, err := h.ItemSize()
	if err != nil {
		return 0, err
	}
	n := uint64(1)
	for _, d := range h.Shape {
		if d != 0 && n > math.MaxUint64/uint64(d) {
			return 0, ErrShapeOverflow
		}
		n *= uint64(d)
	}
	if n > math.MaxInt64/uint64(item) {
		return 0, ErrShapeOverflow
	}
	total := n * uint64(item)
	if total > math.MaxInt32 {
		return 0, ErrShapeOverflow
	}
	return int(total), nil
}

// DecodeHeader reads a header from the start of buf, bounds-checking every
// field. It returns the header and the payload offset.
func DecodeHeader(buf []byte) (Header, int, error) {
	if len(buf) < rankSize {
		return Header{}, 0, fmt.Errorf("%w: %d bytes, need %d for rank", ErrTruncated, len(buf), rankSize)
	}
	rank := binary.NativeEndian.Uint32(buf)
	if rank == 0 || rank > MaxRank {
		return Header{}, 0, fmt.Errorf("%w: %d", ErrBadRank, rank)
	}

	need := HeaderSize(int(rank))
	if len(buf) < need {
		return Header{}, 0, fmt.Errorf("%w: %d bytes, need %d for rank %d", ErrTruncated, len(buf), need, rank)
	}

	h := Header{Shape: make([]uint32, rank)}
	for i := range h.Shape {
		h.Shape[i] = binary.NativeEndian.Uint32(buf[rankSize+i*dimSize:])
	}

	nameOff := rankSize + int(rank)*dimSize
	h.DType = strings.TrimRight(string(buf[nameOff:nameOff+dtypeSize]), "\x00")
	if _, ok := dtypeItemSizes[h.DType]; !ok {
		return Header{}, 0, fmt.Errorf("%w: %q", ErrUnknownDType, h.DType)
	}

	switch buf[nameOff+dtypeSize] {
	case markerLittle:
		h.Order = binary.LittleEndian
	case markerBig:
		h.Order = binary.BigEndian
	case markerNative, markerNone:
		h.Order = binary.NativeEndian
	default:
		return Header{}, 0, fmt.Errorf("%w: %q", ErrBadEndian, buf[nameOff+dtypeSize])
	}

	return h, need, nil
}

// EncodeHeader writes h into the start of buf and returns the payload
// offset. The marker written is the host's explicit order ('<' or '>'),
// or '|' for single-byte dtypes.
func EncodeHeader(buf []byte, h Header) (int, error) {
	rank := len(h.Shape)
	if rank == 0 || rank > MaxRank {
		return 0, fmt.Errorf("%w: %d", ErrBadRank, rank)
	}
	item, err := h.ItemSize()
	if err != nil {
		return 0, err
	}
	if len(h.DType) >= dtypeSize {
		return 0, fmt.Errorf("%w: name %q too long", ErrUnknownDType, h.DType)
	}
	need := HeaderSize(rank)
	if len(buf) < need {
		return 0, fmt.Errorf("%w: %d bytes, need %d", ErrTruncated, len(buf), need)
	}

	binary.NativeEndian.PutUint32(buf, uint32(rank))
	for i, d := range h.Shape {
		binary.NativeEndian.PutUint32(buf[rankSize+i*dimSize:], d)
	}

	nameOff := rankSize + rank*dimSize
	name := buf[nameOff : nameOff+dtypeSize]
	for i := range name {
		name[i] = 0
	}
	copy(name, h.DType)

	marker := byte(markerNone)
	if item > 1 {
		if hostLittleEndian() {
			marker = markerLittle
		} else {
			marker = markerBig
		}
	}
	buf[nameOff+dtypeSize] = marker

	return need, nil
}
