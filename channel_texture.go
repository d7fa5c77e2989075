package shadertoy

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Channel texture errors.
var (
	// ErrNoDataOrSize is returned when a channel texture is constructed
	// with neither initial data nor a target size.
	ErrNoDataOrSize = errors.New("shadertoy: channel texture needs initial data or a size")

	// ErrDataAndSize is returned when both initial data and a target size
	// are supplied.
	ErrDataAndSize = errors.New("shadertoy: channel texture takes data or a size, not both")

	// ErrNotBound is returned when Update is called before Bind has
	// created the GPU resource.
	ErrNotBound = errors.New("shadertoy: channel texture not bound to a shader yet")

	// ErrChannelSizeMismatch is returned when update data dimensions
	// differ from the texture's. Size changes are not supported; recreate
	// the channel texture instead.
	ErrChannelSizeMismatch = errors.New("shadertoy: update size does not match channel texture")
)

// Device is the subset of the GPU device surface the channel texture
// needs. hal.Device satisfies it; tests substitute doubles. The adapter
// borrows the device per call and never owns it — teardown of the device
// and everything created on it is the engine's business.
type Device interface {
	CreateTexture(*hal.TextureDescriptor) (hal.Texture, error)
	CreateTextureView(hal.Texture, *hal.TextureViewDescriptor) (hal.TextureView, error)
	CreateSampler(*hal.SamplerDescriptor) (hal.Sampler, error)
	DestroySampler(hal.Sampler)
}

// Queue is the subset of the GPU queue surface the channel texture needs.
// hal.Queue satisfies it.
type Queue interface {
	WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D)
}

// SamplerConfig configures how a shader samples the channel texture.
type SamplerConfig struct {
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
}

// DefaultSamplerConfig returns the Shadertoy channel default: repeat
// wrapping with linear filtering.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
	}
}

// ChannelConfig configures a new ChannelTexture. Exactly one of Data or a
// positive Width/Height pair must be set.
type ChannelConfig struct {
	// Data is the initial pixel contents in row-major RGBA order.
	Data *Frame

	// Width, Height synthesize an empty buffer when Data is nil: all-zero
	// for the float format, opaque white otherwise so an unwritten
	// channel is visible rather than black.
	Width  int
	Height int

	// Format is the GPU pixel format. Zero value means RGBA8Unorm.
	Format gputypes.TextureFormat

	// Sampler is the sampler configuration. Zero value means
	// DefaultSamplerConfig.
	Sampler *SamplerConfig

	// Label is an optional debug label for the GPU resources.
	Label string
}

// ChannelBinding holds the descriptors the shader-binding machinery needs
// to wire the texture into a pipeline: the resource, its view, the sampler,
// and the channel resolution uniform.
type ChannelBinding struct {
	Texture    hal.Texture
	View       hal.TextureView
	Sampler    hal.Sampler
	Resolution [3]float32
}

// channelResource is the GPU-side half of a bound channel texture. Its
// presence is the state: nil means never bound (CPU data only), non-nil
// means the resource exists and updates may flow.
type channelResource struct {
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
}

// ChannelTexture manages one GPU texture used as a shader input channel.
// The pixel buffer exists from construction; the GPU resource is created
// lazily on the first Bind and mutated in place by Update ever after. The
// resource itself dies with the device — ChannelTexture never destroys it.
//
// ChannelTexture is not safe for concurrent use; like the rest of the
// package it assumes a single render thread.
type ChannelTexture struct {
	data    *Frame
	format  gputypes.TextureFormat
	sampler SamplerConfig
	label   string

	resource *channelResource
}

// NewChannelTexture creates a channel texture from cfg. It fails when
// neither Data nor a positive size is supplied, or when both are.
func NewChannelTexture(cfg ChannelConfig) (*ChannelTexture, error) {
	hasData := cfg.Data != nil
	hasSize := cfg.Width > 0 && cfg.Height > 0
	switch {
	case !hasData && !hasSize:
		return nil, ErrNoDataOrSize
	case hasData && hasSize:
		return nil, ErrDataAndSize
	}

	format := cfg.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}

	data := cfg.Data
	if data == nil {
		if format == gputypes.TextureFormatRGBA32Float {
			data = NewFrame(cfg.Width, cfg.Height, PixelFormatRGBAF32)
		} else {
			// Opaque white for visibility.
			data = NewFrame(cfg.Width, cfg.Height, PixelFormatRGBA8)
			pix := data.Pix()
			for i := range pix {
				pix[i] = 0xFF
			}
		}
	}

	sampler := DefaultSamplerConfig()
	if cfg.Sampler != nil {
		sampler = *cfg.Sampler
	}

	return &ChannelTexture{
		data:    data,
		format:  format,
		sampler: sampler,
		label:   cfg.Label,
	}, nil
}

// Data returns the CPU-side pixel buffer.
func (c *ChannelTexture) Data() *Frame { return c.data }

// Size returns the texture dimensions in pixels.
func (c *ChannelTexture) Size() (width, height int) {
	return c.data.Width(), c.data.Height()
}

// Bound reports whether the GPU resource has been created.
func (c *ChannelTexture) Bound() bool { return c.resource != nil }

// Bind is called by the shader-binding machinery when the channel is wired
// into a pipeline. The first call creates the texture with usage
// sampled|copy-destination and uploads the current buffer contents; later
// calls reuse the existing resource. The sampler is (re)created from the
// configuration on every call, so sampler changes take effect on rebind.
func (c *ChannelTexture) Bind(device Device, queue Queue) (*ChannelBinding, error) {
	w, h := c.data.Width(), c.data.Height()

	if c.resource == nil {
		tex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         c.label,
			Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        c.format,
			Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("shadertoy: create channel texture: %w", err)
		}

		view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label:         c.label,
			Format:        c.format,
			Dimension:     gputypes.TextureViewDimension2D,
			Aspect:        gputypes.TextureAspectAll,
			MipLevelCount: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("shadertoy: create channel texture view: %w", err)
		}

		c.resource = &channelResource{texture: tex, view: view}
		c.write(queue, c.data.Pix(), w, h)
		Logger().Info("channel texture created", "width", w, "height", h, "label", c.label)
	}

	// Sampler follows the current configuration even on rebind.
	if c.resource.sampler != nil {
		device.DestroySampler(c.resource.sampler)
		c.resource.sampler = nil
	}
	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        c.label,
		AddressModeU: c.sampler.AddressModeU,
		AddressModeV: c.sampler.AddressModeV,
		AddressModeW: c.sampler.AddressModeW,
		MagFilter:    c.sampler.MagFilter,
		MinFilter:    c.sampler.MinFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("shadertoy: create channel sampler: %w", err)
	}
	c.resource.sampler = sampler

	return &ChannelBinding{
		Texture:    c.resource.texture,
		View:       c.resource.view,
		Sampler:    c.resource.sampler,
		Resolution: [3]float32{float32(w), float32(h), 1},
	}, nil
}

// Update replaces the texture's pixel contents with data. It fails before
// the first Bind, and when data's dimensions differ from the texture's —
// in both cases without touching the GPU resource. On success the rows are
// flipped vertically (image row 0 is the GPU texture's bottom row),
// recorded in the CPU buffer, and uploaded through the queue, replacing
// all prior contents. The copy is synchronous with respect to the caller;
// cross-queue ordering belongs to the GPU binding.
func (c *ChannelTexture) Update(queue Queue, data *Frame) error {
	if data == nil {
		return ErrNilFrame
	}
	if c.resource == nil {
		return ErrNotBound
	}
	w, h := c.data.Width(), c.data.Height()
	if data.Width() != w || data.Height() != h {
		return fmt.Errorf("%w: new data is %dx%d, texture is %dx%d",
			ErrChannelSizeMismatch, data.Width(), data.Height(), w, h)
	}

	flipped := data.Clone()
	flipped.FlipVertical()
	c.data = flipped
	c.write(queue, flipped.Pix(), w, h)
	return nil
}

// write uploads pix to the GPU resource.
func (c *ChannelTexture) write(queue Queue, pix []byte, w, h int) {
	bytesPerRow := uint32(w * formatBytesPerPixel(c.format))
	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  c.resource.texture,
			MipLevel: 0,
		},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: uint32(h),
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
}

// formatBytesPerPixel returns the byte size of one pixel for the formats a
// channel texture supports.
func formatBytesPerPixel(f gputypes.TextureFormat) int {
	if f == gputypes.TextureFormatRGBA32Float {
		return 16
	}
	return 4
}
