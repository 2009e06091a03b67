package scene

import (
	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box lit by a spot light
// hanging under the ceiling
func NewCornellScene() *Scene {
	s := New(geometry.CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:     core.NewVec3(0, 1, 0),
		Width:  400,
		Height: 400,
		VFov:   40.0,
		Near:   1,
		Far:    5000,
	})

	white := material.NewLit(core.NewVec3(0.73, 0.73, 0.73), 0, 0.2)
	red := material.NewLit(core.NewVec3(0.65, 0.05, 0.05), 0, 0.2)
	green := material.NewLit(core.NewVec3(0.12, 0.45, 0.15), 0, 0.2)

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	// Floor - XZ plane at y=0
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize)), white)
	// Ceiling - XZ plane at y=boxSize
	s.AddShape(geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize)), white)
	// Back wall - XY plane at z=boxSize
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0)), white)
	// Left wall (red) - YZ plane at x=0
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0)), red)
	// Right wall (green) - YZ plane at x=boxSize
	s.AddShape(geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize)), green)

	// Left sphere, polished metal
	s.AddShape(geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5),
		material.NewLit(core.NewVec3(0.8, 0.8, 0.9), 1, 0.95))

	// Right sphere, glossy plastic
	s.AddShape(geometry.NewSphere(core.NewVec3(370, 90, 351), 90),
		material.NewLit(core.NewVec3(0.9, 0.9, 0.9), 0, 0.85))

	// Warm disc spot pointing straight down from just under the ceiling
	s.AddEmitter(lights.NewDiscSpotLight(
		core.NewVec3(278, boxSize-5, 278),
		core.NewVec3(278, 0, 278),
		core.NewVec3(1.0, 0.9, 0.75),
		60,
		40,
		lights.EVToIntensity(16),
	))

	return s
}
