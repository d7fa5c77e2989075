// Package shadertoy renders parametric pixel-shader animations
// ("Shadertoy"-style shaders) frame by frame through an external shader
// engine, optionally writing frames into shared memory for cross-process
// consumption.
//
// # Overview
//
// The package is a thin coordination layer: shader compilation, GPU device
// and queue management, and draw scheduling all belong to the engine behind
// the [Engine] interface. What lives here is the frame transport — channel
// reordering, sequencing, image encoding, and the self-describing
// shared-memory layout in [github.com/gogpu/shadertoy/shmframe] — plus the
// [ChannelTexture] adapter that feeds live pixel data into a shader input
// channel.
//
// # Quick Start
//
//	eng := shadertoy.NewSoftwareEngine(800, 450)
//	r, err := shadertoy.NewRenderer(eng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frame, err := r.RenderFrame(shadertoy.FrameOptions{Time: 1.5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = frame // (height, width, 4) BGRA pixel buffer
//
// Rendering a one-second sequence at 30 fps to numbered PNG files:
//
//	err := r.SaveSequence("frame_%04d.png", 0, 1, 30, nil)
//
// # Shared Memory
//
// RenderToSharedMemory writes a frame directly into a pre-allocated block
// whose header declares rank, shape, dtype and endianness. The block is
// self-contained: an independent consumer process needs no second control
// channel to interpret it. See the shmframe package for the exact layout.
//
// # Input Channels
//
// ChannelTexture manages one GPU texture used as a shader input channel.
// The GPU resource is created lazily on first Bind and updated in place by
// Update between frames.
//
// # Concurrency
//
// Everything is single-threaded and synchronous: calls run to completion on
// the caller's goroutine. Cross-process synchronization of shared-memory
// blocks is the caller's responsibility.
package shadertoy
