package renderer

import (
	"image"

	"github.com/df07/literal-raytracer/pkg/core"
)

// RenderStats contains statistics about the accumulated image
type RenderStats struct {
	TotalPixels    int     // Total number of pixels in the buffer
	TotalSamples   int     // Total number of deposited samples
	AverageSamples float64 // Average samples per pixel
	CoveredPixels  int     // Pixels with at least one sample
	MaxSamplesUsed int     // Maximum samples deposited on any pixel
}

// TickStats counts what happened during one simulation tick
type TickStats struct {
	Emitted    int // New rays taken from emitters
	Traced     int // Rays drained from the queue
	Drawn      int // Segments handed to the sink
	Culled     int // Drawable rays entirely behind the near plane
	Spawned    int // Children queued
	Dropped    int // Children discarded by the brightness floor
	Terminated int // Traced rays that left no children
	QueueLen   int // Queue length after the tick
}

// Add accumulates another tick's counters; QueueLen takes the latest value
func (s *TickStats) Add(other TickStats) {
	s.Emitted += other.Emitted
	s.Traced += other.Traced
	s.Drawn += other.Drawn
	s.Culled += other.Culled
	s.Spawned += other.Spawned
	s.Dropped += other.Dropped
	s.Terminated += other.Terminated
	s.QueueLen = other.QueueLen
}

// CalculateAverageLuminance returns the mean perceptual luminance of an image
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
