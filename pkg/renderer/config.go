package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/lights"
)

var (
	// ErrInvalidConfig wraps every configuration validation failure
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNoEmitters is returned when the emitter list is empty
	ErrNoEmitters = errors.New("no emitters configured")
	// ErrNoIntersector is returned when the host provides no scene hit test
	ErrNoIntersector = errors.New("no scene intersector")
	// ErrNoMaterialSource is returned when the host provides no material lookup
	ErrNoMaterialSource = errors.New("no material source")
)

// SinkMode selects where each tick's segments go
type SinkMode string

const (
	// SinkAccumulate rasterizes segments into the progressive pixel buffer
	SinkAccumulate SinkMode = "accumulate"
	// SinkSegments hands the raw segment list to an external rasterizer
	SinkSegments SinkMode = "segments"
)

// Config contains the light simulation configuration
type Config struct {
	ActiveRayTarget     int                   `json:"activeRayTarget"`     // Rays in flight; also the per-tick trace budget
	MinBounces          int                   `json:"minBounces"`          // Rays with fewer bounces are not drawn
	MaxBounces          int                   `json:"maxBounces"`          // Bounce ceiling, negative = unbounded
	MaxRayDistance      float64               `json:"maxRayDistance"`      // Fixed ray length, or cap for the attenuation policy
	DistancePolicy      lights.DistancePolicy `json:"distancePolicy"`      // "fixed" or "attenuation"
	IntensityLowerEV    float64               `json:"intensityLowerEV"`    // Intensity mapped to 0
	IntensityUpperEV    float64               `json:"intensityUpperEV"`    // Intensity mapped to 1
	MinBrightness       float64               `json:"minBrightness"`       // Children dimmer than this are discarded
	Distribution        core.Distribution     `json:"distribution"`        // Emission angular distribution
	DistributionSigma   float64               `json:"distributionSigma"`   // Degrees, 0 = a third of the cone half-angle
	RoughnessSigmaScale float64               `json:"roughnessSigmaScale"` // Normal perturbation in degrees at smoothness 0
	Width               int                   `json:"width"`               // Output resolution
	Height              int                   `json:"height"`
	SinkMode            SinkMode              `json:"sinkMode"`
	Seed                int64                 `json:"seed"` // Seed for the single random stream
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		ActiveRayTarget:     100,
		MinBounces:          1,
		MaxBounces:          16,
		MaxRayDistance:      1000,
		DistancePolicy:      lights.DistanceFixed,
		IntensityLowerEV:    0,
		IntensityUpperEV:    16,
		MinBrightness:       0.001,
		Distribution:        core.DistributionGaussianCenter,
		DistributionSigma:   0,
		RoughnessSigmaScale: 60,
		Width:               400,
		Height:              300,
		SinkMode:            SinkAccumulate,
		Seed:                42,
	}
}

// Validate checks the configuration, returning an error wrapping ErrInvalidConfig
func (c Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.ActiveRayTarget <= 0 {
		return invalid("activeRayTarget must be positive, got %d", c.ActiveRayTarget)
	}
	if c.MinBounces < 0 {
		return invalid("minBounces must be non-negative, got %d", c.MinBounces)
	}
	if !(c.MaxRayDistance > 0) || math.IsInf(c.MaxRayDistance, 0) {
		return invalid("maxRayDistance must be positive and finite, got %v", c.MaxRayDistance)
	}
	if _, err := lights.ParseDistancePolicy(string(c.DistancePolicy)); err != nil {
		return invalid("%v", err)
	}
	if !(c.IntensityUpperEV > c.IntensityLowerEV) {
		return invalid("intensityUpperEV %v must exceed intensityLowerEV %v", c.IntensityUpperEV, c.IntensityLowerEV)
	}
	if c.MinBrightness < 0 || math.IsNaN(c.MinBrightness) {
		return invalid("minBrightness must be non-negative, got %v", c.MinBrightness)
	}
	if c.MaxBounces < 0 && c.MinBrightness <= 0 {
		// Nothing else ends a lineage inside a closed scene
		return invalid("unbounded maxBounces needs a positive minBrightness, got %v", c.MinBrightness)
	}
	if _, err := core.ParseDistribution(string(c.Distribution)); err != nil {
		return invalid("%v", err)
	}
	if c.DistributionSigma < 0 || math.IsNaN(c.DistributionSigma) {
		return invalid("distributionSigma must be non-negative, got %v", c.DistributionSigma)
	}
	if c.RoughnessSigmaScale < 0 || math.IsNaN(c.RoughnessSigmaScale) {
		return invalid("roughnessSigmaScale must be non-negative, got %v", c.RoughnessSigmaScale)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("resolution must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SinkMode != SinkAccumulate && c.SinkMode != SinkSegments {
		return invalid("unknown sink mode %q", c.SinkMode)
	}
	return nil
}

// emissionConfig extracts the emission model configuration
func (c Config) emissionConfig() lights.EmissionConfig {
	return lights.EmissionConfig{
		Distribution: c.Distribution,
		SigmaDegrees: c.DistributionSigma,
		LowerEV:      c.IntensityLowerEV,
		UpperEV:      c.IntensityUpperEV,
		Policy:       c.DistancePolicy,
		MaxDistance:  c.MaxRayDistance,
	}
}
