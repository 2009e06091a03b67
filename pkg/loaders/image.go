package loaders

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/material"
)

// LoadImage loads a PNG or JPEG image as a texture. Rows are flipped so
// texture row 0 is the bottom of the image, matching uv v=0. Alpha is kept
// unpremultiplied so mask textures can carry smoothness in it.
func LoadImage(filename string) (*material.ImageTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	return FromImage(img), nil
}

// FromImage converts a decoded image into a texture
func FromImage(img image.Image) *material.ImageTexture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]material.RGBA, width*height)

	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			pixels[row*width+x] = material.RGBA{
				Color: core.NewVec3(
					float64(c.R)/255.0,
					float64(c.G)/255.0,
					float64(c.B)/255.0,
				),
				A: float64(c.A) / 255.0,
			}
		}
	}

	return material.NewImageTexture(width, height, pixels)
}
