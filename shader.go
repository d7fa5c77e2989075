package shadertoy

import (
	"fmt"

	"github.com/gogpu/naga"
)

// CompileShader validates WGSL shader source and compiles it to SPIR-V.
// Engines consume the source directly; compiling here lets a caller reject
// malformed shaders before any GPU state exists, with naga's diagnostics
// instead of a mid-render engine failure.
func CompileShader(wgsl string) ([]byte, error) {
	if wgsl == "" {
		return nil, fmt.Errorf("shadertoy: empty shader source")
	}
	spirv, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shadertoy: shader compilation failed: %w", err)
	}
	return spirv, nil
}

// ValidateShader checks WGSL shader source without keeping the compiled
// module.
func ValidateShader(wgsl string) error {
	_, err := CompileShader(wgsl)
	return err
}
