package renderer

import "github.com/df07/literal-raytracer/pkg/core"

// ScreenSegment is the projected, near-plane-clipped image of one drawn
// ray. Screen xy are pixels from the bottom-left corner; z holds the
// inverse linear eye depth code. Segments are never mutated once built.
type ScreenSegment struct {
	Start                    core.Vec3 // (x, y, depth code) of the clipped start
	Delta                    core.Vec3 // clipped end minus clipped start
	Color                    core.Vec3
	WorldLength              float64 // length of the unclipped world segment
	NormalizedStartIntensity float64 // [0,1]
	StartDistance            float64 // world distance from the ray origin to the clipped start
	EndDistance              float64 // world distance from the ray origin to the clipped end
}

// End returns the screen position of the clipped end
func (s ScreenSegment) End() core.Vec3 {
	return s.Start.Add(s.Delta)
}
