package shadertoy

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SequenceFrameCount returns the number of frames a sequence over
// [start, end) at the given rate produces: floor((end-start)*fps).
func SequenceFrameCount(start, end, fps float64) int {
	return int(math.Floor((end - start) * fps))
}

// RenderSequence renders floor((end-start)*fps) frames at times
// start + i/fps for i in [0, count). Each frame uses timeDelta = 1/fps and
// mousePath[i] when a path is supplied, else the neutral position
// (0, 0, 0, 0). A non-nil mousePath shorter than the frame count fails
// before any frame is rendered. An empty or inverted range yields zero
// frames.
//
// Frames are returned in engine-native blue-green-red-alpha order.
func (r *Renderer) RenderSequence(start, end, fps float64, mousePath [][4]float32) ([]*Frame, error) {
	count := SequenceFrameCount(start, end, fps)
	if count < 0 {
		count = 0
	}
	if mousePath != nil && len(mousePath) < count {
		return nil, fmt.Errorf("%w: %d positions for %d frames",
			ErrMousePathTooShort, len(mousePath), count)
	}

	timeDelta := 1.0 / fps
	frames := make([]*Frame, 0, count)
	for i := 0; i < count; i++ {
		opts := FrameOptions{
			Time:       start + float64(i)*timeDelta,
			TimeDelta:  timeDelta,
			FrameIndex: i,
			Framerate:  fps,
		}
		if mousePath != nil {
			opts.Mouse = mousePath[i]
		}
		frame, err := r.RenderFrame(opts)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// SaveSequence renders a sequence and writes each frame to the path
// produced by formatting the frame index into pattern, e.g.
// "out/frame_%04d.png". Channel order is corrected to red-green-blue-alpha
// before encoding. The encoder is chosen by the pattern's extension:
// .png, .jpg/.jpeg, .bmp, or .tif/.tiff.
func (r *Renderer) SaveSequence(pattern string, start, end, fps float64, mousePath [][4]float32) error {
	frames, err := r.RenderSequence(start, end, fps, mousePath)
	if err != nil {
		return err
	}
	for i, frame := range frames {
		frame.SwapRB()
		path := fmt.Sprintf(pattern, i)
		if err := writeImage(path, frame.ToRGBA()); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	Logger().Info("saved frame sequence", "pattern", pattern, "frames", len(frames))
	return nil
}

// writeImage encodes img to path with the encoder matching the extension.
func writeImage(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = fmt.Errorf("shadertoy: unsupported image extension %q", filepath.Ext(path))
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
