package shadertoy

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/shadertoy/shmframe"
)

// RenderToSharedMemory renders one frame at the given time and copies it
// into the block's payload region, reordering channels from the engine's
// blue-green-red-alpha to red-green-blue-alpha on the way. Only the payload
// bytes are modified; the header is read, never written.
//
// The block's declared shape must be (height, width, 4) matching the
// engine's resolution, and the dtype item size must match the engine's
// channel depth. The copy is element-for-element with no intermediate
// full-frame staging buffer.
//
// The remaining fields of opts (TimeDelta, FrameIndex, Mouse, Date) pass
// through to the engine; opts.Time is overridden by t.
func (r *Renderer) RenderToSharedMemory(block *shmframe.Block, t float64, opts FrameOptions) error {
	opts.Time = t
	frame, err := r.RenderFrame(opts)
	if err != nil {
		return err
	}
	return copySwapped(block, frame)
}

// copySwapped copies frame into the block's payload, swapping channels 0
// and 2 of every pixel and honoring the block's declared element byte
// order.
func copySwapped(block *shmframe.Block, frame *Frame) error {
	hdr := block.Header()
	if len(hdr.Shape) != 3 ||
		int(hdr.Shape[0]) != frame.Height() ||
		int(hdr.Shape[1]) != frame.Width() ||
		hdr.Shape[2] != 4 {
		return fmt.Errorf("%w: block declares %v, frame is (%d, %d, 4)",
			shmframe.ErrShapeMismatch, hdr.Shape, frame.Height(), frame.Width())
	}

	item, err := hdr.ItemSize()
	if err != nil {
		return err
	}
	cb := frame.Format().ChannelBytes()
	if item != cb {
		return fmt.Errorf("%w: block dtype %s (%d bytes), frame channels are %d bytes",
			shmframe.ErrShapeMismatch, hdr.DType, item, cb)
	}

	src := frame.Pix()
	dst := block.Payload()

	if cb == 1 {
		for i := 0; i+4 <= len(src); i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
		return nil
	}

	// Four-byte channels: re-encode each value in the declared order.
	order := hdr.Order
	for i := 0; i+16 <= len(src); i += 16 {
		order.PutUint32(dst[i+0:], binary.NativeEndian.Uint32(src[i+8:]))
		order.PutUint32(dst[i+4:], binary.NativeEndian.Uint32(src[i+4:]))
		order.PutUint32(dst[i+8:], binary.NativeEndian.Uint32(src[i+0:]))
		order.PutUint32(dst[i+12:], binary.NativeEndian.Uint32(src[i+12:]))
	}
	return nil
}
