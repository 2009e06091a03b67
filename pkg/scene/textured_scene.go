package scene

import (
	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
)

// NewTexturedScene creates a scene demonstrating base color and mask
// textures. A nil floor texture falls back to a procedural checkerboard.
func NewTexturedScene(floorTexture *material.ImageTexture) *Scene {
	s := New(geometry.CameraConfig{
		Center: core.NewVec3(0, 2, 10),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  480,
		Height: 270,
		VFov:   50.0,
		Near:   0.3,
		Far:    1000,
	})

	if floorTexture == nil {
		floorTexture = material.NewCheckerboardTexture(256, 256, 32,
			core.NewVec3(0.9, 0.9, 0.9), // White
			core.NewVec3(0.2, 0.2, 0.8), // Blue
		)
	}

	floor := material.NewLit(core.NewVec3(1, 1, 1), 0, 0.4)
	floor.BaseColorTexture = floorTexture
	s.AddShape(NewGroundQuad(core.NewVec3(0, 0, 0), 12), floor)

	// Backdrop alternating polished metal and rough plastic stripes
	backdrop := material.NewLit(core.NewVec3(0.85, 0.8, 0.7), 0, 0)
	backdrop.MaskTexture = material.NewStripedMaskTexture(64, 8, 1, 0.95, 0, 0.2)
	s.AddShape(geometry.NewQuad(core.NewVec3(-6, 0, -4), core.NewVec3(12, 0, 0), core.NewVec3(0, 6, 0)), backdrop)

	gradient := material.NewLit(core.NewVec3(1, 1, 1), 0, 0.6)
	gradient.BaseColorTexture = material.NewGradientTexture(1, 64,
		core.NewVec3(1.0, 0.2, 0.2), // Red at the bottom pole
		core.NewVec3(0.2, 1.0, 0.2), // Green at the top pole
	)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 1.2, 0), 1.2), gradient)

	s.AddEmitter(lights.NewPointSpotLight(core.NewVec3(-3, 6, 5), core.NewVec3(0, 0.5, 0), core.NewVec3(1, 1, 1), 35, lights.EVToIntensity(15)))
	s.AddEmitter(lights.NewPointSpotLight(core.NewVec3(4, 3, 4), core.NewVec3(0, 1, -4), core.NewVec3(1, 0.8, 0.5), 25, lights.EVToIntensity(14)))

	return s
}
