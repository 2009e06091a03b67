package material

import (
	"errors"

	"github.com/df07/literal-raytracer/pkg/core"
)

// ShadingModelLit is the only shading model the light tracer understands
const ShadingModelLit = "lit"

var (
	// ErrUnsupportedShadingModel is returned for a surface whose material is
	// not the lit shading model. This is a content error, not recoverable.
	ErrUnsupportedShadingModel = errors.New("unsupported shading model")
	// ErrUnknownSurface is returned when the source has no material for a surface
	ErrUnknownSurface = errors.New("unknown surface")
)

// Range is an inclusive [Min, Max] remap target
type Range struct {
	Min, Max float64
}

// Remap maps t in [0,1] into the range
func (r Range) Remap(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Descriptor is the host-side definition of a surface material.
// Textures are optional: a nil texture samples as opaque white.
type Descriptor struct {
	ShadingModel string

	BaseColorTexture *ImageTexture
	BaseColor        core.Vec3

	// MaskTexture packs metallic in red and smoothness in alpha
	MaskTexture *ImageTexture

	Smoothness      float64 // used when there is no mask texture
	SmoothnessRange Range
	Metallic        float64 // used when there is no mask texture
	MetallicRange   Range
}

// NewLit creates an untextured lit material
func NewLit(baseColor core.Vec3, metallic, smoothness float64) Descriptor {
	return Descriptor{
		ShadingModel:    ShadingModelLit,
		BaseColor:       baseColor,
		Smoothness:      smoothness,
		SmoothnessRange: Range{Min: 0, Max: 1},
		Metallic:        metallic,
		MetallicRange:   Range{Min: 0, Max: 1},
	}
}

// Source resolves the material of a surface
type Source interface {
	MaterialOf(surface core.SurfaceID) (Descriptor, error)
}

// Snapshot is the material state sampled at one surface point
type Snapshot struct {
	BaseColor  core.Vec3
	Metallic   float64 // [0,1]
	Smoothness float64 // [0,1]
}
