package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/lights"
)

// Cell is the running average of every sample deposited on one pixel
type Cell struct {
	AverageColor core.Vec3
	SampleCount  int
}

// AddSample folds a new color into the running mean
func (c *Cell) AddSample(sample core.Vec3) {
	c.SampleCount++
	n := float64(c.SampleCount)
	c.AverageColor = c.AverageColor.Multiply((n - 1) / n).Add(sample.Multiply(1 / n))
}

// Luminance returns the perceptual brightness of the average color
func (c *Cell) Luminance() float64 {
	return c.AverageColor.Luminance()
}

// Accumulator is a pixel buffer that rasterizes screen segments and keeps
// a per-pixel running average of their attenuated colors
type Accumulator struct {
	width, height int
	near, far     float64 // camera clip distances, to decode depth codes
	cells         []Cell  // row-major, row 0 at the bottom of the screen
}

// NewAccumulator creates a buffer of width x height black cells
func NewAccumulator(width, height int, near, far float64) *Accumulator {
	a := &Accumulator{near: near, far: far}
	a.Resize(width, height)
	return a
}

// Width returns the buffer width in pixels
func (a *Accumulator) Width() int { return a.width }

// Height returns the buffer height in pixels
func (a *Accumulator) Height() int { return a.height }

// Resize changes the buffer resolution. Every cell is reset to black with
// zero samples, even when the size is unchanged.
func (a *Accumulator) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width*height != len(a.cells) {
		a.cells = make([]Cell, width*height)
	} else {
		a.Reset()
	}
	a.width, a.height = width, height
}

// Reset clears every cell to black with zero samples
func (a *Accumulator) Reset() {
	clear(a.cells)
}

// Cell returns the cell at pixel (x, y), origin bottom-left
func (a *Accumulator) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= a.width || y >= a.height {
		return Cell{}
	}
	return a.cells[y*a.width+x]
}

// AddSample deposits a color on one pixel; out of range pixels are ignored
func (a *Accumulator) AddSample(x, y int, sample core.Vec3) {
	if x < 0 || y < 0 || x >= a.width || y >= a.height {
		return
	}
	a.cells[y*a.width+x].AddSample(sample)
}

// Submit rasterizes each segment in order
func (a *Accumulator) Submit(segments []ScreenSegment) error {
	for i := range segments {
		a.Deposit(segments[i])
	}
	return nil
}

// Deposit clips a segment to the buffer, walks it with Bresenham and adds
// one attenuated sample to every covered pixel
func (a *Accumulator) Deposit(segment ScreenSegment) {
	if a.width == 0 || a.height == 0 {
		return
	}

	startRatio, endRatio, ok := a.clip(segment)
	if !ok {
		return
	}

	p0 := segment.Start.Add(segment.Delta.Multiply(startRatio))
	p1 := segment.Start.Add(segment.Delta.Multiply(endRatio))
	x0, y0 := a.pixel(p0)
	x1, y1 := a.pixel(p1)

	invStart := inverseDepthFromCode(segment.Start.Z, a.near, a.far)
	invEnd := inverseDepthFromCode(segment.End().Z, a.near, a.far)

	steps := max(abs(x1-x0), abs(y1-y0))
	walkLine(x0, y0, x1, y1, func(step, x, y int) {
		u := startRatio
		if steps > 0 {
			u += (endRatio - startRatio) * float64(step) / float64(steps)
		}
		distance := segment.StartDistance + perspectiveRatio(u, invStart, invEnd)*(segment.EndDistance-segment.StartDistance)
		sample := segment.Color.Multiply(segment.NormalizedStartIntensity * lights.Attenuation(distance))
		a.cells[y*a.width+x].AddSample(sample)
	})
}

// clip returns the fraction range of the segment that lies inside the
// buffer with a non-negative depth code. Each end is clipped by its own
// per-axis entry ratio.
func (a *Accumulator) clip(segment ScreenSegment) (float64, float64, bool) {
	start := segment.Start
	end := segment.End()

	lo, hi := a.bounds()
	fromStart, ok := entryRatio(start, end, lo, hi)
	if !ok {
		return 0, 0, false
	}
	fromEnd, ok := entryRatio(end, start, lo, hi)
	if !ok {
		return 0, 0, false
	}

	startRatio, endRatio := fromStart, 1-fromEnd
	if startRatio > endRatio {
		return 0, 0, false
	}
	return startRatio, endRatio, true
}

// bounds returns the inclusive box a clipped point must lie in
func (a *Accumulator) bounds() (core.Vec3, core.Vec3) {
	const edge = 1e-9
	return core.NewVec3(0, 0, 0),
		core.NewVec3(float64(a.width)-edge, float64(a.height)-edge, math.Inf(1))
}

// pixel returns the integer pixel containing a clipped point
func (a *Accumulator) pixel(p core.Vec3) (int, int) {
	x := min(max(int(math.Floor(p.X)), 0), a.width-1)
	y := min(max(int(math.Floor(p.Y)), 0), a.height-1)
	return x, y
}

// Image converts the buffer to a gamma-corrected RGBA image with row 0 at
// the top
func (a *Accumulator) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			img.SetRGBA(x, a.height-1-y, vec3ToColor(a.cells[y*a.width+x].AverageColor))
		}
	}
	return img
}

// Stats summarises how many samples the buffer holds
func (a *Accumulator) Stats() RenderStats {
	stats := RenderStats{TotalPixels: a.width * a.height}
	for i := range a.cells {
		count := a.cells[i].SampleCount
		stats.TotalSamples += count
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
		if count > 0 {
			stats.CoveredPixels++
		}
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// entryRatio returns the smallest t in [0,1] at which from + t*(to-from)
// lies inside [lo, hi] on every axis
func entryRatio(from, to, lo, hi core.Vec3) (float64, bool) {
	enter, exit := 0.0, 1.0
	axes := [3][4]float64{
		{from.X, to.X, lo.X, hi.X},
		{from.Y, to.Y, lo.Y, hi.Y},
		{from.Z, to.Z, lo.Z, hi.Z},
	}
	for _, axis := range axes {
		p, q, minV, maxV := axis[0], axis[1], axis[2], axis[3]
		d := q - p
		if d == 0 {
			if p < minV || p > maxV {
				return 0, false
			}
			continue
		}
		t0, t1 := (minV-p)/d, (maxV-p)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		enter = max(enter, t0)
		exit = min(exit, t1)
		if enter > exit {
			return 0, false
		}
	}
	return enter, true
}

// perspectiveRatio converts a screen-space fraction u into the matching
// world-space fraction, given the inverse eye depths of both ends
func perspectiveRatio(u, invStart, invEnd float64) float64 {
	denom := (1-u)*invStart + u*invEnd
	if !(denom > 0) {
		return u
	}
	return u * invEnd / denom
}

// walkLine visits every pixel on the Bresenham line from (x0,y0) to
// (x1,y1) inclusive, passing the step index
func walkLine(x0, y0, x1, y1 int, visit func(step, x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)

	// Diagonals need no error term
	if dx == -dy {
		for i := 0; i <= dx; i++ {
			visit(i, x0+i*sx, y0+i*sy)
		}
		return
	}

	err := dx + dy
	for step := 0; ; step++ {
		visit(step, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
