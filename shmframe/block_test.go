package shmframe

import (
	"errors"
	"testing"
)

func TestNewBlock(t *testing.T) {
	h := Header{Shape: []uint32{2, 3, 4}, DType: "uint8"}
	buf := make([]byte, HeaderSize(3)+2*3*4)
	if _, err := EncodeHeader(buf, h); err != nil {
		t.Fatalf("EncodeHeader() error = %v", err)
	}

	b, err := NewBlock(buf)
	if err != nil {
		t.Fatalf("NewBlock() error = %v", err)
	}
	if got := b.PayloadOffset(); got != 4+3*4+16+1 {
		t.Errorf("PayloadOffset() = %d, want %d", got, 4+3*4+16+1)
	}
	if got := len(b.Payload()); got != 24 {
		t.Errorf("len(Payload()) = %d, want 24", got)
	}
}

func TestNewBlockTooSmall(t *testing.T) {
	h := Header{Shape: []uint32{100, 100, 4}, DType: "uint8"}
	// Room for the header but only a fraction of the declared payload.
	buf := make([]byte, HeaderSize(3)+100)
	if _, err := EncodeHeader(buf, h); err != nil {
		t.Fatalf("EncodeHeader() error = %v", err)
	}
	if _, err := NewBlock(buf); !errors.Is(err, ErrBlockTooSmall) {
		t.Errorf("NewBlock() error = %v, want %v", err, ErrBlockTooSmall)
	}
}

func TestFormatWritesOnlyHeader(t *testing.T) {
	h := Header{Shape: []uint32{2, 2, 4}, DType: "uint8"}
	buf := make([]byte, HeaderSize(3)+16)
	for i := range buf {
		buf[i] = 0xAB
	}

	b, err := Format(buf, h)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	for i, v := range b.Payload() {
		if v != 0xAB {
			t.Fatalf("payload[%d] = %#x, Format must not touch the payload", i, v)
		}
	}
}

func TestBlockHeaderIsACopy(t *testing.T) {
	h := Header{Shape: []uint32{2, 2, 4}, DType: "uint8"}
	buf := make([]byte, HeaderSize(3)+16)
	b, err := Format(buf, h)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := b.Header()
	got.Shape[0] = 999
	if b.Header().Shape[0] != 2 {
		t.Error("mutating the returned header changed the block")
	}
}

func TestReadRGBA(t *testing.T) {
	h := Header{Shape: []uint32{2, 2, 4}, DType: "uint8"}
	buf := make([]byte, HeaderSize(3)+16)
	b, err := Format(buf, h)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	payload := b.Payload()
	for i := range payload {
		payload[i] = uint8(i)
	}

	img, err := b.ReadRGBA()
	if err != nil {
		t.Fatalf("ReadRGBA() error = %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", img.Bounds())
	}
	if img.Pix[5] != 5 {
		t.Errorf("Pix[5] = %d, want 5", img.Pix[5])
	}
}

func TestReadRGBAWrongShape(t *testing.T) {
	h := Header{Shape: []uint32{16}, DType: "uint8"}
	buf := make([]byte, HeaderSize(1)+16)
	b, err := Format(buf, h)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if _, err := b.ReadRGBA(); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("ReadRGBA() error = %v, want %v", err, ErrShapeMismatch)
	}
}

func TestCopyStrided(t *testing.T) {
	h := Header{Shape: []uint32{2, 2, 4}, DType: "uint8"}
	buf := make([]byte, HeaderSize(3)+16)
	b, err := Format(buf, h)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	payload := b.Payload()
	for i := range payload {
		payload[i] = uint8(i + 1)
	}

	// Destination rows padded to 12 bytes; padding must survive.
	dst := make([]byte, 2*12)
	for i := range dst {
		dst[i] = 0xEE
	}
	if err := b.CopyStrided(dst, 12); err != nil {
		t.Fatalf("CopyStrided() error = %v", err)
	}
	if dst[0] != 1 || dst[7] != 8 {
		t.Errorf("row 0 = % x, want payload bytes 1..8", dst[:8])
	}
	if dst[8] != 0xEE || dst[11] != 0xEE {
		t.Error("row 0 padding overwritten")
	}
	if dst[12] != 9 {
		t.Errorf("row 1 starts with %d, want 9", dst[12])
	}

	if err := b.CopyStrided(dst, 4); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("CopyStrided(stride=4) error = %v, want %v", err, ErrShapeMismatch)
	}
	if err := b.CopyStrided(dst[:10], 12); !errors.Is(err, ErrBlockTooSmall) {
		t.Errorf("CopyStrided(short dst) error = %v, want %v", err, ErrBlockTooSmall)
	}
}
