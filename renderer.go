package shadertoy

import (
	"errors"
	"fmt"
	"time"
)

// Renderer errors.
var (
	// ErrNilEngine is returned when constructing a renderer without an engine.
	ErrNilEngine = errors.New("shadertoy: engine is nil")

	// ErrMousePathTooShort is returned when a mouse path does not cover
	// every frame of a sequence.
	ErrMousePathTooShort = errors.New("shadertoy: mouse path shorter than frame count")
)

// Renderer binds a shader engine and produces frames from time-parameterized
// inputs. It holds no GPU state of its own; every render call runs to
// completion on the caller's goroutine.
type Renderer struct {
	engine Engine

	// now is the wall clock used when FrameOptions.Date is nil.
	// Swappable for tests.
	now func() time.Time
}

// NewRenderer creates a renderer bound to the given engine.
func NewRenderer(engine Engine) (*Renderer, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	return &Renderer{engine: engine, now: time.Now}, nil
}

// Engine returns the bound engine.
func (r *Renderer) Engine() Engine { return r.engine }

// Resolution returns the engine's output size in pixels.
func (r *Renderer) Resolution() (width, height int) {
	return r.engine.Resolution()
}

// RenderFrame renders one frame with the given uniform parameters,
// delegating to the engine's snapshot operation. When opts.Date is nil the
// current local wall clock is decomposed into (year, zero-based month, day,
// seconds-since-midnight with fraction) — shaders use this for wall-clock
// effects, so the decomposition is fixed.
//
// The returned frame is in the engine's native blue-green-red-alpha order.
func (r *Renderer) RenderFrame(opts FrameOptions) (*Frame, error) {
	if opts.Date == nil {
		d := currentDate(r.now())
		opts.Date = &d
	}

	frame, err := r.engine.Snapshot(opts)
	if err != nil {
		return nil, fmt.Errorf("shadertoy: snapshot at t=%g: %w", opts.Time, err)
	}

	w, h := r.engine.Resolution()
	if frame.Width() != w || frame.Height() != h {
		return nil, fmt.Errorf("%w: engine returned %dx%d, resolution is %dx%d",
			ErrFrameSizeMismatch, frame.Width(), frame.Height(), w, h)
	}

	Logger().Debug("rendered frame",
		"time", opts.Time, "frame", opts.FrameIndex, "format", frame.Format().String())
	return frame, nil
}
