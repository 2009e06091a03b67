package scene

import (
	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
)

// NewSpotlightsScene creates the default scene: three coloured spot lights
// crossing over a ground plane with a mirror sphere and a matte sphere
func NewSpotlightsScene() *Scene {
	s := New(geometry.CameraConfig{
		Center: core.NewVec3(0, 3, 9),
		LookAt: core.NewVec3(0, 0.5, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  400,
		Height: 300,
		VFov:   45.0,
		Near:   0.3,
		Far:    1000,
	})

	s.AddShape(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
		material.NewLit(core.NewVec3(0.6, 0.6, 0.6), 0, 0.3))
	s.AddShape(geometry.NewSphere(core.NewVec3(-1.2, 1, 0), 1),
		material.NewLit(core.NewVec3(0.95, 0.95, 0.95), 1, 1))
	s.AddShape(geometry.NewSphere(core.NewVec3(1.4, 0.7, 0.8), 0.7),
		material.NewLit(core.NewVec3(0.2, 0.3, 0.8), 0, 0.1))

	// Back wall to catch reflections
	s.AddShape(geometry.NewQuad(core.NewVec3(-6, 0, -3), core.NewVec3(12, 0, 0), core.NewVec3(0, 6, 0)),
		material.NewLit(core.NewVec3(0.8, 0.8, 0.8), 0, 0.5))

	target := core.NewVec3(0, 0.5, 0)
	s.AddEmitter(lights.NewPointSpotLight(core.NewVec3(-4, 5, 3), target, core.NewVec3(1, 0.2, 0.2), 20, lights.EVToIntensity(15)))
	s.AddEmitter(lights.NewPointSpotLight(core.NewVec3(4, 5, 3), target, core.NewVec3(0.2, 1, 0.2), 20, lights.EVToIntensity(15)))
	s.AddEmitter(lights.NewPointSpotLight(core.NewVec3(0, 6, -2), target, core.NewVec3(0.2, 0.3, 1), 20, lights.EVToIntensity(15)))

	return s
}
