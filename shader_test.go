package shadertoy

import (
	"strings"
	"testing"
)

const testShaderWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func TestCompileShader(t *testing.T) {
	spirv, err := CompileShader(testShaderWGSL)
	if err != nil {
		if strings.Contains(err.Error(), "not yet implemented") ||
			strings.Contains(err.Error(), "not supported") {
			t.Skipf("naga feature not yet implemented: %v", err)
		}
		t.Fatalf("CompileShader() error = %v", err)
	}
	if len(spirv) < 4 {
		t.Fatal("SPIR-V output too short")
	}

	// SPIR-V magic number, little-endian.
	magic := uint32(spirv[0]) | uint32(spirv[1])<<8 | uint32(spirv[2])<<16 | uint32(spirv[3])<<24
	if magic != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", magic)
	}
}

func TestCompileShaderEmpty(t *testing.T) {
	if _, err := CompileShader(""); err == nil {
		t.Error("CompileShader() accepted empty source")
	}
}

func TestValidateShaderBadSource(t *testing.T) {
	if err := ValidateShader("this is not wgsl"); err == nil {
		t.Error("ValidateShader() accepted malformed source")
	}
}
