// Package shaders holds the WGSL source of the stencil pass and the binding
// constants that match its annotations.
package shaders

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed stencil.wgsl
var stencilSource string

// Entry points in the stencil shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Bind group and binding indices used by the stencil shader.
const (
	CoordMatrixGroup   = 0
	CoordMatrixBinding = 0
	PrimitivesGroup    = 1
	PrimitivesBinding  = 0
)

// Vertex attribute locations used by the stencil shader.
const (
	PositionLocation       = 0
	PrimitiveIndexLocation = 1
)

// StencilWGSL returns the WGSL source of the stencil pass.
func StencilWGSL() string {
	return stencilSource
}

// CompileSPIRV compiles the stencil shader to SPIR-V words for backends
// that take SPIR-V instead of WGSL.
func CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(stencilSource)
	if err != nil {
		return nil, fmt.Errorf("compile stencil shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile stencil shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}
