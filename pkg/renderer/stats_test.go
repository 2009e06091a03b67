package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Create a 2x2 image
	// Red, green and blue luma weights sum to 1, black adds nothing
	// Expected average: 1.0 / 4 = 0.25

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	// 1x1 White pixel -> Lum = 1.0
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestTickStatsAdd(t *testing.T) {
	total := TickStats{Emitted: 3, Traced: 4, QueueLen: 9}
	total.Add(TickStats{Emitted: 1, Traced: 2, Drawn: 2, Spawned: 3, Dropped: 1, Terminated: 1, QueueLen: 5})

	want := TickStats{Emitted: 4, Traced: 6, Drawn: 2, Spawned: 3, Dropped: 1, Terminated: 1, QueueLen: 5}
	if total != want {
		t.Errorf("Expected %+v, got %+v", want, total)
	}
}
