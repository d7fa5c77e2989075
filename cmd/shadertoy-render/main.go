// Command shadertoy-render renders a shader animation to numbered image
// files or into a named shared-memory block for another process to consume.
//
// The built-in software engine is used, so the tool runs without a GPU; a
// WGSL source passed with -shader is validated up front the way a real
// engine invocation would be.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gogpu/shadertoy"
	"github.com/gogpu/shadertoy/shmframe"
)

func main() {
	var (
		width  = flag.Int("width", 800, "frame width")
		height = flag.Int("height", 450, "frame height")
		start  = flag.Float64("start", 0, "sequence start time in seconds")
		end    = flag.Float64("end", 1, "sequence end time in seconds")
		fps    = flag.Float64("fps", 30, "frames per second")
		output = flag.String("output", "frame_%04d.png", "output pattern consuming one frame index")
		shm    = flag.String("shm", "", "shared-memory block name; renders into the block instead of files")
		shader = flag.String("shader", "", "WGSL shader source file to validate")
	)
	flag.Parse()

	if *shader != "" {
		src, err := os.ReadFile(*shader)
		if err != nil {
			log.Fatalf("read shader: %v", err)
		}
		if err := shadertoy.ValidateShader(string(src)); err != nil {
			log.Fatalf("invalid shader: %v", err)
		}
		log.Printf("shader %s validated", *shader)
	}

	eng := shadertoy.NewSoftwareEngine(*width, *height)
	r, err := shadertoy.NewRenderer(eng)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	if *shm != "" {
		renderToBlock(r, *shm, *width, *height, *start, *end, *fps)
		return
	}

	if err := r.SaveSequence(*output, *start, *end, *fps, nil); err != nil {
		log.Fatalf("render: %v", err)
	}
	log.Printf("saved %d frames to %s", shadertoy.SequenceFrameCount(*start, *end, *fps), *output)
}

// renderToBlock creates the named block and writes every frame of the
// sequence into it in order. A consumer polling the block sees the frames
// as they land; synchronization beyond that is the consumer's problem.
func renderToBlock(r *shadertoy.Renderer, name string, width, height int, start, end, fps float64) {
	region, block, err := shmframe.CreateArray(name, []uint32{uint32(height), uint32(width), 4}, "uint8")
	if err != nil {
		log.Fatalf("create block: %v", err)
	}
	defer func() {
		if err := region.Close(); err != nil {
			log.Printf("close region: %v", err)
		}
	}()

	count := shadertoy.SequenceFrameCount(start, end, fps)
	delta := 1.0 / fps
	for i := 0; i < count; i++ {
		opts := shadertoy.FrameOptions{TimeDelta: delta, FrameIndex: i, Framerate: fps}
		if err := r.RenderToSharedMemory(block, start+float64(i)*delta, opts); err != nil {
			log.Fatalf("frame %d: %v", i, err)
		}
	}
	log.Printf("wrote %d frames into %s (%d bytes)", count, name, region.Size())
}
