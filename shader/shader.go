// Package shader provides the GPU version of the halftone filter.
//
// The WGSL source implements the same per-pixel algorithm as package
// halftone as a fullscreen fragment pass. Hosts bind the uniform block
// at binding 0, the source texture at binding 1 and a clamp-to-edge
// sampler at binding 2, then draw three vertices.
package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/halftone"
	"github.com/gogpu/naga"
)

//go:embed halftone.wgsl
var halftoneWGSL string

// Entry points and bindings of the halftone shader.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"

	BindingParams  = 0
	BindingTexture = 1
	BindingSampler = 2
)

// TargetFormat is the color attachment format the shader writes.
var TargetFormat = gputypes.TextureFormatRGBA8Unorm

// UniformSize is the size in bytes of the uniform block.
const UniformSize = 32

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// ErrInvalidSPIRV is returned when the compiler output is not a SPIR-V module.
var ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V output")

// Source returns the WGSL source of the halftone shader.
func Source() string {
	return halftoneWGSL
}

// Compile compiles the shader to SPIR-V words.
func Compile() ([]uint32, error) {
	spirvBytes, err := naga.Compile(halftoneWGSL)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile halftone.wgsl: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("%w: magic 0x%08X", ErrInvalidSPIRV, words[0])
	}
	return words, nil
}

// Uniforms mirrors the shader's Params block.
type Uniforms struct {
	Resolution [2]float32
	GridSize   float32
	// Rotation is in radians.
	Rotation float32
	Enabled  bool
}

// NewUniforms converts frame parameters for a width×height target.
func NewUniforms(p halftone.Params, width, height int) Uniforms {
	return Uniforms{
		Resolution: [2]float32{float32(width), float32(height)},
		GridSize:   float32(p.GridSize),
		Rotation:   float32(p.RotationDegrees * math.Pi / 180),
		Enabled:    p.Enabled,
	}
}

// Bytes packs the uniforms in the shader's memory layout, little-endian.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], math.Float32bits(u.Resolution[0]))
	le.PutUint32(buf[4:], math.Float32bits(u.Resolution[1]))
	le.PutUint32(buf[8:], math.Float32bits(u.GridSize))
	le.PutUint32(buf[12:], math.Float32bits(u.Rotation))
	if u.Enabled {
		le.PutUint32(buf[16:], 1)
	}
	// bytes 20..31 are padding
	return buf
}
