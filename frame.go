package shadertoy

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
)

// Frame errors.
var (
	// ErrNilFrame is returned when a nil frame is passed to an operation.
	ErrNilFrame = errors.New("shadertoy: frame is nil")

	// ErrFrameSizeMismatch is returned when frame dimensions don't match.
	ErrFrameSizeMismatch = errors.New("shadertoy: frame size mismatch")
)

// PixelFormat is the per-channel storage type of a Frame.
type PixelFormat uint8

const (
	// PixelFormatRGBA8 stores each channel as an unsigned 8-bit value.
	PixelFormatRGBA8 PixelFormat = iota

	// PixelFormatRGBAF32 stores each channel as a 32-bit float.
	PixelFormatRGBAF32
)

// String returns a human-readable name for the format.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA8:
		return "RGBA8"
	case PixelFormatRGBAF32:
		return "RGBAF32"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// ChannelBytes returns the number of bytes per channel value.
func (f PixelFormat) ChannelBytes() int {
	if f == PixelFormatRGBAF32 {
		return 4
	}
	return 1
}

// BytesPerPixel returns the number of bytes per 4-channel pixel.
func (f PixelFormat) BytesPerPixel() int {
	return 4 * f.ChannelBytes()
}

// Frame is one rendered image as a dense, row-major (height, width, 4)
// channel array. Engines produce frames in their native blue-green-red-alpha
// channel order; SwapRB converts to red-green-blue-alpha in place.
//
// A frame is transient: it is produced fresh by each render call and
// consumed immediately by copy.
type Frame struct {
	width  int
	height int
	format PixelFormat
	pix    []uint8
}

// NewFrame creates a zeroed frame with the given dimensions and format.
func NewFrame(width, height int, format PixelFormat) *Frame {
	return &Frame{
		width:  width,
		height: height,
		format: format,
		pix:    make([]uint8, width*height*format.BytesPerPixel()),
	}
}

// FrameFromPix wraps an existing pixel buffer without copying.
// The buffer length must equal width*height*4*channelBytes.
func FrameFromPix(width, height int, format PixelFormat, pix []uint8) (*Frame, error) {
	want := width * height * format.BytesPerPixel()
	if len(pix) != want {
		return nil, fmt.Errorf("%w: have %d bytes, want %d for %dx%d %s",
			ErrFrameSizeMismatch, len(pix), want, width, height, format)
	}
	return &Frame{width: width, height: height, format: format, pix: pix}, nil
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Format returns the per-channel storage format.
func (f *Frame) Format() PixelFormat { return f.format }

// Pix returns the raw pixel data, row-major, 4 channels per pixel.
func (f *Frame) Pix() []uint8 { return f.pix }

// SwapRB exchanges channels 0 and 2 of every pixel in place, converting
// between blue-green-red-alpha and red-green-blue-alpha order. The
// permutation is its own inverse: applying it twice restores the frame.
func (f *Frame) SwapRB() {
	cb := f.format.ChannelBytes()
	stride := 4 * cb
	for i := 0; i+stride <= len(f.pix); i += stride {
		for b := 0; b < cb; b++ {
			f.pix[i+b], f.pix[i+2*cb+b] = f.pix[i+2*cb+b], f.pix[i+b]
		}
	}
}

// FlipVertical reverses the row order in place. GPU engines and image
// consumers disagree on whether row 0 is the top or bottom of the image.
func (f *Frame) FlipVertical() {
	rowLen := f.width * f.format.BytesPerPixel()
	tmp := make([]uint8, rowLen)
	for top, bot := 0, f.height-1; top < bot; top, bot = top+1, bot-1 {
		a := f.pix[top*rowLen : (top+1)*rowLen]
		b := f.pix[bot*rowLen : (bot+1)*rowLen]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.pix))
	copy(pix, f.pix)
	return &Frame{width: f.width, height: f.height, format: f.format, pix: pix}
}

// ToRGBA converts the frame to an image.RGBA. The frame must already be in
// red-green-blue-alpha channel order (call SwapRB on an engine-native frame
// first). Float frames are clamped to [0, 1] and quantized.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	if f.format == PixelFormatRGBA8 {
		copy(img.Pix, f.pix)
		return img
	}
	for i := 0; i*4 < len(f.pix); i++ {
		v := float32frombytes(f.pix[i*4:])
		img.Pix[i] = quantize(v)
	}
	return img
}

// float32frombytes reads a native-order float32 from b.
func float32frombytes(b []uint8) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(b))
}

// float32tobytes writes a native-order float32 into b.
func float32tobytes(b []uint8, v float32) {
	binary.NativeEndian.PutUint32(b, math.Float32bits(v))
}

// quantize maps a float channel value to an 8-bit value, clamping to [0, 1].
func quantize(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
