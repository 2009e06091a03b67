package material

import (
	"github.com/df07/literal-raytracer/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]RGBA, width*height)
	checkSize = max(checkSize, 1)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Alternate colors based on check position
			color := color1
			if (x/checkSize+y/checkSize)%2 != 0 {
				color = color2
			}
			pixels[y*width+x] = RGBA{Color: color, A: 1}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewStripedMaskTexture creates a mask texture of vertical stripes that
// alternate between two metallic/smoothness pairs. Metallic goes in red,
// smoothness in alpha.
func NewStripedMaskTexture(width, stripes int, metallic1, smoothness1, metallic2, smoothness2 float64) *ImageTexture {
	pixels := make([]RGBA, width)
	stripeWidth := max(width/max(stripes, 1), 1)

	for x := 0; x < width; x++ {
		metallic, smoothness := metallic1, smoothness1
		if (x/stripeWidth)%2 != 0 {
			metallic, smoothness = metallic2, smoothness2
		}
		pixels[x] = RGBA{Color: core.NewVec3(metallic, 0, 0), A: smoothness}
	}

	return NewImageTexture(width, 1, pixels)
}

// NewGradientTexture creates a gradient from color1 at v=0 to color2 at v=1
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]RGBA, width*height)

	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		color := color1.Lerp(color2, t)

		for x := 0; x < width; x++ {
			pixels[y*width+x] = RGBA{Color: color, A: 1}
		}
	}

	return NewImageTexture(width, height, pixels)
}
