package shadertoy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/shadertoy/shmframe"
)

func newTestBlock(t *testing.T, width, height int, dtype string) *shmframe.Block {
	t.Helper()
	h := shmframe.Header{Shape: []uint32{uint32(height), uint32(width), 4}, DType: dtype}
	size, err := h.PayloadSize()
	if err != nil {
		t.Fatalf("PayloadSize() error = %v", err)
	}
	block, err := shmframe.Format(make([]byte, h.PayloadOffset()+size), h)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return block
}

func TestRenderToSharedMemory(t *testing.T) {
	eng := NewSoftwareEngine(4, 3)
	r, _ := NewRenderer(eng)
	block := newTestBlock(t, 4, 3, "uint8")

	if err := r.RenderToSharedMemory(block, 0.5, FrameOptions{}); err != nil {
		t.Fatalf("RenderToSharedMemory() error = %v", err)
	}

	// The payload must hold the engine's frame with channels 0 and 2
	// exchanged.
	want, err := eng.Snapshot(FrameOptions{Time: 0.5})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	want.SwapRB()
	if !bytes.Equal(block.Payload(), want.Pix()) {
		t.Error("payload does not match the channel-swapped frame")
	}
}

func TestRenderToSharedMemoryOverridesTime(t *testing.T) {
	eng := newFakeEngine(2, 2)
	r, _ := NewRenderer(eng)
	block := newTestBlock(t, 2, 2, "uint8")

	opts := FrameOptions{Time: 99, FrameIndex: 7}
	if err := r.RenderToSharedMemory(block, 1.5, opts); err != nil {
		t.Fatalf("RenderToSharedMemory() error = %v", err)
	}
	if got := eng.calls[0].Time; got != 1.5 {
		t.Errorf("Time = %g, want the explicit 1.5", got)
	}
	if got := eng.calls[0].FrameIndex; got != 7 {
		t.Errorf("FrameIndex = %d, want the passed-through 7", got)
	}
}

// Only the payload region may change; the header bytes stay as formatted.
func TestRenderToSharedMemoryLeavesHeaderAlone(t *testing.T) {
	eng := NewSoftwareEngine(4, 3)
	r, _ := NewRenderer(eng)

	h := shmframe.Header{Shape: []uint32{3, 4, 4}, DType: "uint8"}
	buf := make([]byte, h.PayloadOffset()+3*4*4)
	if _, err := shmframe.EncodeHeader(buf, h); err != nil {
		t.Fatalf("EncodeHeader() error = %v", err)
	}
	hdrCopy := make([]byte, h.PayloadOffset())
	copy(hdrCopy, buf)

	block, err := shmframe.NewBlock(buf)
	if err != nil {
		t.Fatalf("NewBlock() error = %v", err)
	}
	if err := r.RenderToSharedMemory(block, 0, FrameOptions{}); err != nil {
		t.Fatalf("RenderToSharedMemory() error = %v", err)
	}
	if !bytes.Equal(buf[:h.PayloadOffset()], hdrCopy) {
		t.Error("header bytes were modified by the copy")
	}
}

func TestRenderToSharedMemoryFloat(t *testing.T) {
	eng := NewSoftwareEngineF32(2, 2)
	r, _ := NewRenderer(eng)
	block := newTestBlock(t, 2, 2, "float32")

	if err := r.RenderToSharedMemory(block, 0.25, FrameOptions{}); err != nil {
		t.Fatalf("RenderToSharedMemory() error = %v", err)
	}

	frame, err := eng.Snapshot(FrameOptions{Time: 0.25})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	order := block.Header().Order
	payload := block.Payload()

	// First pixel: payload channel 0 must equal the frame's channel 2,
	// decoded through the block's declared byte order.
	got := order.Uint32(payload)
	want := binary.NativeEndian.Uint32(frame.Pix()[8:])
	if got != want {
		t.Errorf("payload channel 0 = %#x, want frame channel 2 %#x", got, want)
	}
	if a := order.Uint32(payload[12:]); a != binary.NativeEndian.Uint32(frame.Pix()[12:]) {
		t.Errorf("alpha channel changed: %#x", a)
	}
}

func TestRenderToSharedMemoryMismatch(t *testing.T) {
	eng := NewSoftwareEngine(4, 3)
	r, _ := NewRenderer(eng)

	tests := []struct {
		name          string
		width, height int
		dtype         string
	}{
		{"wrong width", 5, 3, "uint8"},
		{"wrong height", 4, 2, "uint8"},
		{"wrong depth", 4, 3, "float32"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := newTestBlock(t, tt.width, tt.height, tt.dtype)
			err := r.RenderToSharedMemory(block, 0, FrameOptions{})
			if !errors.Is(err, shmframe.ErrShapeMismatch) {
				t.Errorf("error = %v, want %v", err, shmframe.ErrShapeMismatch)
			}
		})
	}
}
