package lights

import (
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
)

// NewDiscSpotLight creates a spot emitter whose rays start anywhere on a
// disc of the given radius centred at from and facing to. The wider source
// softens the edges of the cone's footprint.
func NewDiscSpotLight(from, to, color core.Vec3, halfAngleDegrees, radius, intensity float64) Emitter {
	e := NewPointSpotLight(from, to, color, halfAngleDegrees, intensity)
	e.Radius = radius
	return e
}

// discBasis returns two unit vectors spanning the plane perpendicular to normal
func discBasis(normal core.Vec3) (right, up core.Vec3) {
	n := normal.Normalize()
	helper := core.NewVec3(0, 1, 0)
	if math.Abs(n.Y) > 0.9 {
		helper = core.NewVec3(1, 0, 0)
	}
	right = helper.Cross(n).Normalize()
	up = n.Cross(right)
	return right, up
}

// sampleOrigin picks the start point of a new ray. Point sources always
// start at Position and draw no samples.
func sampleOrigin(e Emitter, sampler core.Sampler) core.Vec3 {
	if e.Radius <= 0 {
		return e.Position
	}

	// Sample uniformly on the disc using polar coordinates
	sample := sampler.Get2D()
	r := math.Sqrt(sample.X) * e.Radius
	theta := 2.0 * math.Pi * sample.Y

	right, up := discBasis(e.Forward)
	return e.Position.Add(right.Multiply(r * math.Cos(theta))).Add(up.Multiply(r * math.Sin(theta)))
}
