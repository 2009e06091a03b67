package material

import (
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
)

// RGBA is a texel with alpha
type RGBA struct {
	Color core.Vec3
	A     float64
}

// opaqueWhite is returned for a missing texture so scalar defaults apply
var opaqueWhite = RGBA{Color: core.White, A: 1}

// ImageTexture is a row-major grid of texels sampled with nearest-pixel lookup
type ImageTexture struct {
	Width  int
	Height int
	Pixels []RGBA // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []RGBA) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewSolidTexture creates a 1x1 texture
func NewSolidTexture(color core.Vec3, alpha float64) *ImageTexture {
	return NewImageTexture(1, 1, []RGBA{{Color: color, A: alpha}})
}

// Sample returns the texel under uv. UVs wrap; u=0,v=0 is the first texel.
// A nil texture samples as opaque white.
func (t *ImageTexture) Sample(uv core.Vec2) RGBA {
	if t == nil || t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return opaqueWhite
	}

	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	x := min(int(math.Floor(u*float64(t.Width))), t.Width-1)
	y := min(int(math.Floor(v*float64(t.Height))), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
