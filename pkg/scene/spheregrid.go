package scene

import (
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color space to RGB
// L: lightness (0-1), C: chroma (0-0.4), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to linear LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of spheres sweeping hue across one
// axis and metallic/smoothness across the other, under a single point light
func NewSphereGridScene() *Scene {
	s := New(geometry.CameraConfig{
		Center: core.NewVec3(4.5, 6, 18),
		LookAt: core.NewVec3(4.5, 0.8, 4.5),
		Up:     core.NewVec3(0, 1, 0),
		Width:  640,
		Height: 360,
		VFov:   40.0,
		Near:   0.3,
		Far:    1000,
	})

	s.AddShape(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
		material.NewLit(core.NewVec3(0.5, 0.5, 0.5), 0, 0.2))

	gridSize := 8
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := spacing * 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			hue := float64(i) / float64(gridSize-1) * 360.0
			t := float64(j) / float64(gridSize-1)
			color := oklchToRGB(0.7, 0.15, hue)

			s.AddShape(geometry.NewSphere(core.NewVec3(x, radius, z), radius),
				material.NewLit(color, t, 0.3+0.7*t))
		}
	}

	s.AddEmitter(lights.NewPointLight(core.NewVec3(4.5, 8, 4.5), core.NewVec3(1, 0.95, 0.85), lights.EVToIntensity(16)))

	return s
}
