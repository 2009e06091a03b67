package renderer

import (
	"fmt"
	"math/rand"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
	"github.com/df07/literal-raytracer/pkg/integrator"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
)

// Host bundles what the surrounding application provides to the simulation
type Host struct {
	Emitters    []lights.Emitter
	Intersector core.Intersector
	Materials   material.Source
	Camera      *geometry.Camera
}

// validate checks that every collaborator is present
func (h Host) validate() error {
	if len(h.Emitters) == 0 {
		return ErrNoEmitters
	}
	for i, e := range h.Emitters {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("emitter %d: %w", i, err)
		}
	}
	if h.Intersector == nil {
		return ErrNoIntersector
	}
	if h.Materials == nil {
		return ErrNoMaterialSource
	}
	if h.Camera == nil {
		return fmt.Errorf("%w: no camera", ErrInvalidConfig)
	}
	return nil
}

// Scheduler owns the ray queue and advances the simulation one tick at a
// time. It is single-threaded: Tick must not be called concurrently.
type Scheduler struct {
	config      Config
	emitters    []lights.Emitter
	nextEmitter int // round-robin cursor
	emission    *lights.EmissionModel
	engine      *integrator.BounceEngine
	materials   *material.Cache
	camera      *geometry.Camera
	projector   *Projector
	queue       *RayQueue
	sampler     core.Sampler
	segments    []ScreenSegment // draw list of the latest tick
	sink        Sink
	ticks       int
}

// NewScheduler validates the configuration and builds a scheduler. The
// camera is resized to the configured resolution. The sink must match the
// sink mode: accumulate mode takes an *Accumulator and builds one when sink
// is nil, segments mode rejects an *Accumulator and a nil sink keeps the
// segments only in the scheduler's own draw list.
func NewScheduler(config Config, host Host, sink Sink) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := host.validate(); err != nil {
		return nil, err
	}
	sink, err := sinkForMode(config, host.Camera, sink)
	if err != nil {
		return nil, err
	}

	emission, err := lights.NewEmissionModel(config.emissionConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if host.Camera.Width() != config.Width || host.Camera.Height() != config.Height {
		host.Camera.Resize(config.Width, config.Height)
	}

	materials := material.NewCache(host.Materials)
	engine := integrator.NewBounceEngine(host.Intersector, materials, emission, integrator.Config{
		MinBounces:          config.MinBounces,
		MaxBounces:          config.MaxBounces,
		MinBrightness:       config.MinBrightness,
		RoughnessSigmaScale: config.RoughnessSigmaScale,
	})

	return &Scheduler{
		config:    config,
		emitters:  append([]lights.Emitter(nil), host.Emitters...),
		emission:  emission,
		engine:    engine,
		materials: materials,
		camera:    host.Camera,
		projector: NewProjector(host.Camera),
		queue:     NewRayQueue(config.ActiveRayTarget * 2),
		sampler:   core.NewRandomSampler(rand.New(rand.NewSource(config.Seed))),
		sink:      sink,
	}, nil
}

// sinkForMode checks sink against the configured sink mode
func sinkForMode(config Config, camera *geometry.Camera, sink Sink) (Sink, error) {
	_, accumulates := sink.(*Accumulator)
	switch config.SinkMode {
	case SinkAccumulate:
		if sink == nil {
			return NewAccumulator(config.Width, config.Height, camera.Near(), camera.Far()), nil
		}
		if !accumulates {
			return nil, fmt.Errorf("%w: sink mode %q needs an accumulator, got %T", ErrInvalidConfig, config.SinkMode, sink)
		}
	case SinkSegments:
		if accumulates {
			return nil, fmt.Errorf("%w: sink mode %q cannot use an accumulator", ErrInvalidConfig, config.SinkMode)
		}
	}
	return sink, nil
}

// Tick tops the queue up to the active ray target, traces at most that
// many rays, and hands the drawn segments to the sink
func (s *Scheduler) Tick() (TickStats, error) {
	var stats TickStats
	s.segments = s.segments[:0]
	s.ticks++

	stats.Emitted = s.replenish()

	budget := min(s.queue.Len(), s.config.ActiveRayTarget)
	for i := 0; i < budget; i++ {
		ray, _ := s.queue.Pop()
		result, err := s.engine.Bounce(ray, s.sampler)
		if err != nil {
			stats.QueueLen = s.queue.Len()
			return stats, fmt.Errorf("tick %d: %w", s.ticks, err)
		}
		stats.Traced++

		if result.Draw {
			segment, ok := s.projector.Project(ray, result.End, s.emission.NormalizedIntensity(ray))
			if ok {
				s.segments = append(s.segments, segment)
				stats.Drawn++
			} else {
				stats.Culled++
			}
		}

		for _, child := range result.Children {
			s.queue.Push(child)
		}
		stats.Spawned += len(result.Children)
		stats.Dropped += result.Dropped
		if len(result.Children) == 0 {
			stats.Terminated++
		}
	}

	stats.QueueLen = s.queue.Len()
	if s.sink != nil {
		if err := s.sink.Submit(s.segments); err != nil {
			return stats, fmt.Errorf("tick %d: sink: %w", s.ticks, err)
		}
	}
	return stats, nil
}

// replenish emits new rays round-robin until the queue holds the target
func (s *Scheduler) replenish() int {
	need := s.config.ActiveRayTarget - s.queue.Len()
	for i := 0; i < need; i++ {
		emitter := s.emitters[s.nextEmitter]
		s.nextEmitter = (s.nextEmitter + 1) % len(s.emitters)
		s.queue.Push(s.emission.Emit(emitter, s.sampler))
	}
	return max(need, 0)
}

// Segments returns a copy of the segments drawn during the latest tick
func (s *Scheduler) Segments() []ScreenSegment {
	return append([]ScreenSegment(nil), s.segments...)
}

// QueuedRays returns a copy of the rays waiting to be traced, oldest first
func (s *Scheduler) QueuedRays() []core.Ray {
	return s.queue.Rays()
}

// QueueLen returns the number of rays waiting to be traced
func (s *Scheduler) QueueLen() int {
	return s.queue.Len()
}

// Ticks returns how many ticks have run
func (s *Scheduler) Ticks() int {
	return s.ticks
}

// CachedMaterials returns how many surfaces have been resolved so far
func (s *Scheduler) CachedMaterials() int {
	return s.materials.Len()
}

// Resize changes the output resolution. In-flight rays are kept; sinks
// with resolution dependent state are reset.
func (s *Scheduler) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %dx%d", ErrInvalidConfig, width, height)
	}
	s.config.Width, s.config.Height = width, height
	s.camera.Resize(width, height)
	if r, ok := s.sink.(Resizer); ok {
		r.Resize(width, height)
	}
	return nil
}

// Sink returns the sink segments are handed to, nil when only the draw
// list is kept
func (s *Scheduler) Sink() Sink {
	return s.sink
}

// Config returns the scheduler configuration
func (s *Scheduler) Config() Config {
	return s.config
}
