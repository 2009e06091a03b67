package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/literal-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TicksPerPass int // Simulation ticks between image snapshots
	MaxPasses    int // Maximum number of passes
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TicksPerPass: 200,
		MaxPasses:    10,
	}
}

// ProgressiveRaytracer runs the light simulation in passes of ticks and
// snapshots the accumulated image after each pass
type ProgressiveRaytracer struct {
	config      ProgressiveConfig
	scheduler   *Scheduler
	accumulator *Accumulator
	currentPass int
	totals      TickStats
	logger      core.Logger
}

// NewProgressiveRaytracer creates a progressive renderer that accumulates
// every drawn segment into a pixel buffer
func NewProgressiveRaytracer(config Config, host Host, progressive ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.SinkMode != SinkAccumulate {
		return nil, fmt.Errorf("%w: progressive rendering needs sink mode %q, got %q", ErrInvalidConfig, SinkAccumulate, config.SinkMode)
	}
	if progressive.TicksPerPass <= 0 || progressive.MaxPasses <= 0 {
		return nil, fmt.Errorf("%w: ticks per pass and max passes must be positive", ErrInvalidConfig)
	}

	near, far := 0.0, 0.0
	if host.Camera != nil {
		near, far = host.Camera.Near(), host.Camera.Far()
	}
	accumulator := NewAccumulator(config.Width, config.Height, near, far)

	scheduler, err := NewScheduler(config, host, accumulator)
	if err != nil {
		return nil, err
	}

	return &ProgressiveRaytracer{
		config:      progressive,
		scheduler:   scheduler,
		accumulator: accumulator,
		logger:      logger,
	}, nil
}

// Scheduler returns the underlying simulation
func (pr *ProgressiveRaytracer) Scheduler() *Scheduler {
	return pr.scheduler
}

// Accumulator returns the pixel buffer
func (pr *ProgressiveRaytracer) Accumulator() *Accumulator {
	return pr.accumulator
}

// Totals returns the tick counters summed over every pass so far
func (pr *ProgressiveRaytracer) Totals() TickStats {
	return pr.totals
}

// RenderPass runs one pass worth of ticks and returns the current image
func (pr *ProgressiveRaytracer) RenderPass(passNumber int) (*image.RGBA, RenderStats, TickStats, error) {
	pr.currentPass = passNumber

	var passStats TickStats
	for i := 0; i < pr.config.TicksPerPass; i++ {
		tick, err := pr.scheduler.Tick()
		passStats.Add(tick)
		if err != nil {
			pr.totals.Add(passStats)
			return nil, RenderStats{}, passStats, fmt.Errorf("pass %d: %w", passNumber, err)
		}
	}
	pr.totals.Add(passStats)

	return pr.accumulator.Image(), pr.accumulator.Stats(), passStats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	Ticks      TickStats
	IsLast     bool
}

// RenderProgressive renders with channel-based communication (idiomatic Go)
// Returns channels for events. The caller should read from these channels in separate goroutines.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes of %d ticks...\n",
			pr.config.MaxPasses, pr.config.TicksPerPass)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			// Check if client disconnected before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			img, stats, ticks, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%d rays traced, %d segments, %.2f samples/pixel)\n",
				pass, time.Since(startTime), ticks.Traced, ticks.Drawn, stats.AverageSamples)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				Ticks:      ticks,
				IsLast:     pass == pr.config.MaxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}
