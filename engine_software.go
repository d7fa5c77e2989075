package shadertoy

import (
	"fmt"
	"math"
)

// SoftwareEngine is a CPU fallback engine producing deterministic procedural
// frames from the uniform parameters. It compiles nothing and touches no
// GPU; it exists so sequencing, transport, and tooling work without a shader
// engine attached.
//
// The pattern is a time-animated plasma: smooth sinusoidal bands in each
// channel, shifted by the mouse position. Two snapshots with equal options
// are byte-identical.
type SoftwareEngine struct {
	width  int
	height int
	format PixelFormat
}

// NewSoftwareEngine creates a software engine with RGBA8 output.
func NewSoftwareEngine(width, height int) *SoftwareEngine {
	return &SoftwareEngine{width: width, height: height, format: PixelFormatRGBA8}
}

// NewSoftwareEngineF32 creates a software engine producing float32 channel
// values, for consumers that transport high-precision frames.
func NewSoftwareEngineF32(width, height int) *SoftwareEngine {
	return &SoftwareEngine{width: width, height: height, format: PixelFormatRGBAF32}
}

// Resolution returns the output size in pixels.
func (e *SoftwareEngine) Resolution() (int, int) {
	return e.width, e.height
}

// Snapshot renders one plasma frame. Output is BGRA like a real engine, so
// the renderer's channel swap applies uniformly.
func (e *SoftwareEngine) Snapshot(opts FrameOptions) (*Frame, error) {
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("shadertoy: invalid engine resolution %dx%d", e.width, e.height)
	}

	f := NewFrame(e.width, e.height, e.format)
	t := opts.Time
	mx := float64(opts.Mouse[0]) / float64(e.width)
	my := float64(opts.Mouse[1]) / float64(e.height)

	cb := e.format.ChannelBytes()
	stride := e.width * 4 * cb
	for y := 0; y < e.height; y++ {
		v := float64(y) / float64(e.height)
		row := f.pix[y*stride:]
		for x := 0; x < e.width; x++ {
			u := float64(x) / float64(e.width)
			r := 0.5 + 0.5*math.Sin(6.2831*(u+t)+mx)
			g := 0.5 + 0.5*math.Sin(6.2831*(v+t*0.7)+my)
			b := 0.5 + 0.5*math.Sin(6.2831*(u+v)+t*1.3)
			off := x * 4 * cb
			// BGRA channel order.
			if e.format == PixelFormatRGBA8 {
				row[off+0] = quantize(float32(b))
				row[off+1] = quantize(float32(g))
				row[off+2] = quantize(float32(r))
				row[off+3] = 255
			} else {
				float32tobytes(row[off+0:], float32(b))
				float32tobytes(row[off+4:], float32(g))
				float32tobytes(row[off+8:], float32(r))
				float32tobytes(row[off+12:], 1)
			}
		}
	}
	return f, nil
}
