package lights

import (
	"fmt"
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
)

// DistancePolicy selects how far a ray may travel before it is cut off
type DistancePolicy string

const (
	// DistanceFixed gives every ray the same maximum length. Intensity is
	// normalized once at emission and not attenuated between bounces.
	DistanceFixed DistancePolicy = "fixed"
	// DistanceAttenuation carries raw intensity, attenuates it by travelled
	// distance at each bounce, and stops a ray where its intensity would
	// fall to the lower bound.
	DistanceAttenuation DistancePolicy = "attenuation"
)

// ParseDistancePolicy validates a policy name
func ParseDistancePolicy(name string) (DistancePolicy, error) {
	switch p := DistancePolicy(name); p {
	case DistanceFixed, DistanceAttenuation:
		return p, nil
	default:
		return "", fmt.Errorf("unknown distance policy %q", name)
	}
}

// EmissionConfig configures the emission model
type EmissionConfig struct {
	Distribution core.Distribution
	SigmaDegrees float64 // 0 = one third of each emitter's half angle
	LowerEV      float64
	UpperEV      float64
	Policy       DistancePolicy
	MaxDistance  float64 // fixed length, or cap for the attenuation policy
}

// EmissionModel turns emitters into rays and owns intensity normalization
type EmissionModel struct {
	config EmissionConfig
	lower  float64
	upper  float64
}

// NewEmissionModel validates the configuration and creates a model
func NewEmissionModel(config EmissionConfig) (*EmissionModel, error) {
	if _, err := core.ParseDistribution(string(config.Distribution)); err != nil {
		return nil, err
	}
	if _, err := ParseDistancePolicy(string(config.Policy)); err != nil {
		return nil, err
	}
	if config.SigmaDegrees < 0 || math.IsNaN(config.SigmaDegrees) {
		return nil, fmt.Errorf("sigma must be non-negative, got %v", config.SigmaDegrees)
	}
	if !(config.MaxDistance > 0) || math.IsInf(config.MaxDistance, 0) {
		return nil, fmt.Errorf("max distance must be positive and finite, got %v", config.MaxDistance)
	}
	lower, upper := EVToIntensity(config.LowerEV), EVToIntensity(config.UpperEV)
	if !(upper > lower) {
		return nil, fmt.Errorf("upper EV %v must exceed lower EV %v", config.UpperEV, config.LowerEV)
	}
	return &EmissionModel{config: config, lower: lower, upper: upper}, nil
}

// Policy returns the configured distance policy
func (m *EmissionModel) Policy() DistancePolicy {
	return m.config.Policy
}

// Emit creates a new ray leaving the emitter
func (m *EmissionModel) Emit(e Emitter, sampler core.Sampler) core.Ray {
	halfAngle := core.Radians(e.HalfAngle)
	sigma := core.Radians(m.config.SigmaDegrees)
	if sigma == 0 {
		sigma = halfAngle / 3
	}

	intensity := e.Intensity
	if m.config.Policy == DistanceFixed {
		intensity = m.Normalize(intensity)
	}

	return core.Ray{
		Origin:         sampleOrigin(e, sampler),
		Direction:      core.SampleCone(sampler, e.Forward, m.config.Distribution, halfAngle, sigma),
		Color:          e.Color,
		StartIntensity: intensity,
	}
}

// Normalize maps a raw intensity into [0,1] between the EV bounds
func (m *EmissionModel) Normalize(intensity float64) float64 {
	return max(0, min(1, (intensity-m.lower)/(m.upper-m.lower)))
}

// NormalizedIntensity returns the ray's start intensity in [0,1]
func (m *EmissionModel) NormalizedIntensity(ray core.Ray) float64 {
	if m.config.Policy == DistanceFixed {
		return max(0, min(1, ray.StartIntensity))
	}
	return m.Normalize(ray.StartIntensity)
}

// Brightness is the perceptual brightness a ray would deposit at its origin
func (m *EmissionModel) Brightness(ray core.Ray) float64 {
	return ray.Color.Luminance() * m.NormalizedIntensity(ray)
}

// MaxDistance returns how far the ray may travel
func (m *EmissionModel) MaxDistance(ray core.Ray) float64 {
	if m.config.Policy == DistanceFixed {
		return m.config.MaxDistance
	}
	if ray.StartIntensity <= m.lower {
		return 0
	}
	d := InverseAttenuation(m.lower / ray.StartIntensity)
	return min(d, m.config.MaxDistance)
}

// Propagate returns the intensity a child ray starts with after its
// parent travelled distance
func (m *EmissionModel) Propagate(intensity, distance float64) float64 {
	if m.config.Policy == DistanceFixed {
		return intensity
	}
	return intensity * Attenuation(distance)
}

// Attenuation is the inverse-square falloff 1/(1+d²)
func Attenuation(distance float64) float64 {
	return 1 / (1 + distance*distance)
}

// InverseAttenuation returns the distance at which Attenuation equals a.
// a >= 1 maps to 0; a <= 0 maps to +Inf.
func InverseAttenuation(a float64) float64 {
	if a >= 1 {
		return 0
	}
	if a <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(1/a - 1)
}
