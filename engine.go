package shadertoy

// Engine is the external shader-execution collaborator. Implementations own
// shader compilation, the GPU device and queue, and draw scheduling; this
// package only sequences snapshots and moves the resulting pixels.
//
// Snapshot blocks until one complete frame is available. The returned frame
// is in the engine's native blue-green-red-alpha channel order and is owned
// by the caller.
type Engine interface {
	// Snapshot renders one frame with the given uniform parameters.
	// Every field of opts, including Date, is resolved by the caller;
	// an engine never consults the wall clock itself.
	Snapshot(opts FrameOptions) (*Frame, error)

	// Resolution returns the output width and height in pixels.
	Resolution() (width, height int)
}

// ChannelBinder is implemented by engines that expose their input-channel
// list, letting callers attach a ChannelTexture as iChannel0..3. The engine
// calls ChannelTexture.Bind with its own device and queue when the channel
// is first sampled.
type ChannelBinder interface {
	// SetChannel attaches tex as input channel idx (0..3).
	SetChannel(idx int, tex *ChannelTexture) error
}
