package shmframe

import (
	"errors"
	"fmt"
	"image"
)

// Block errors.
var (
	// ErrShapeMismatch is returned when a block's declared shape does not
	// match what an operation requires.
	ErrShapeMismatch = errors.New("shmframe: shape mismatch")
)

// Block is a typed view over an externally owned byte buffer laid out as a
// header plus payload. The buffer is typically a mapped shared-memory
// region, but any slice works; Block never allocates, copies, or frees it.
type Block struct {
	buf    []byte
	header Header
	off    int // payload offset
	size   int // payload size
}

// NewBlock decodes and validates the header at the start of buf. It fails
// on any malformed header and when the declared payload does not fit inside
// buf, so a mis-sized block is rejected before anything writes through it.
func NewBlock(buf []byte) (*Block, error) {
	h, off, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	size, err := h.PayloadSize()
	if err != nil {
		return nil, err
	}
	if len(buf) < off+size {
		return nil, fmt.Errorf("%w: %d bytes, header declares %d payload at offset %d",
			ErrBlockTooSmall, len(buf), size, off)
	}
	return &Block{buf: buf, header: h, off: off, size: size}, nil
}

// Format writes h as the header of buf and returns the resulting block.
// This is the creator side: call it once on a freshly allocated buffer,
// then hand the buffer's name or bytes to producers and consumers.
func Format(buf []byte, h Header) (*Block, error) {
	off, err := EncodeHeader(buf, h)
	if err != nil {
		return nil, err
	}
	size, err := h.PayloadSize()
	if err != nil {
		return nil, err
	}
	if len(buf) < off+size {
		return nil, fmt.Errorf("%w: %d bytes, shape needs %d payload at offset %d",
			ErrBlockTooSmall, len(buf), size, off)
	}
	// Re-decode so the block carries exactly what a reader will see.
	return NewBlock(buf)
}

// Header returns the decoded header. The returned value shares no state
// with the block; mutating it changes nothing.
func (b *Block) Header() Header {
	h := b.header
	h.Shape = append([]uint32(nil), b.header.Shape...)
	return h
}

// Payload returns exactly the payload region, product(shape)×itemsize
// bytes starting at the payload offset. Writes through the returned slice
// mutate the block.
func (b *Block) Payload() []byte {
	return b.buf[b.off : b.off+b.size]
}

// PayloadOffset returns the byte offset of the payload within the block.
func (b *Block) PayloadOffset() int {
	return b.off
}

// ReadRGBA copies the payload of a (height, width, 4) uint8 block into a
// freshly allocated image.RGBA. The payload is assumed to already be in
// red-green-blue-alpha order, as written by a producer.
func (b *Block) ReadRGBA() (*image.RGBA, error) {
	if len(b.header.Shape) != 3 || b.header.Shape[2] != 4 || b.header.DType != "uint8" {
		return nil, fmt.Errorf("%w: want (h, w, 4) uint8, have %v %s",
			ErrShapeMismatch, b.header.Shape, b.header.DType)
	}
	h := int(b.header.Shape[0])
	w := int(b.header.Shape[1])
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, b.Payload())
	return img, nil
}

// CopyStrided copies the payload of a (height, width, 4) uint8 block into
// dst row by row, honoring a destination stride that may include per-row
// padding. Consumers feeding video pipelines with aligned line sizes use
// this to avoid a second staging copy.
func (b *Block) CopyStrided(dst []byte, dstStride int) error {
	if len(b.header.Shape) != 3 || b.header.Shape[2] != 4 || b.header.DType != "uint8" {
		return fmt.Errorf("%w: want (h, w, 4) uint8, have %v %s",
			ErrShapeMismatch, b.header.Shape, b.header.DType)
	}
	h := int(b.header.Shape[0])
	w := int(b.header.Shape[1])
	srcStride := w * 4
	if dstStride < srcStride {
		return fmt.Errorf("%w: dst stride %d < row size %d", ErrShapeMismatch, dstStride, srcStride)
	}
	if len(dst) < h*dstStride {
		return fmt.Errorf("%w: dst %d bytes, need %d", ErrBlockTooSmall, len(dst), h*dstStride)
	}
	src := b.Payload()
	for y := 0; y < h; y++ {
		copy(dst[y*dstStride:y*dstStride+srcStride], src[y*srcStride:(y+1)*srcStride])
	}
	return nil
}
