package lights

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
)

// ErrInvalidEmitter is returned for emitters that cannot produce valid rays
var ErrInvalidEmitter = errors.New("invalid emitter")

// EmitterType distinguishes point and spot emitters
type EmitterType string

const (
	EmitterTypePoint EmitterType = "point"
	EmitterTypeSpot  EmitterType = "spot"
)

// Emitter describes one light source. The host owns the list; the
// scheduler only reads it.
type Emitter struct {
	Type      EmitterType
	Position  core.Vec3
	Forward   core.Vec3 // need not be normalized
	HalfAngle float64   // cone half-angle in degrees; point emitters use 180
	Color     core.Vec3
	Intensity float64 // photometric intensity, see EVToIntensity
	Radius    float64 // rays leave from a disc of this radius facing Forward; 0 = point source
}

// NewPointSpotLight creates a spot emitter at from aimed at to
func NewPointSpotLight(from, to, color core.Vec3, halfAngleDegrees, intensity float64) Emitter {
	return Emitter{
		Type:      EmitterTypeSpot,
		Position:  from,
		Forward:   to.Subtract(from),
		HalfAngle: halfAngleDegrees,
		Color:     color,
		Intensity: intensity,
	}
}

// NewPointLight creates an emitter radiating in every direction
func NewPointLight(position, color core.Vec3, intensity float64) Emitter {
	return Emitter{
		Type:      EmitterTypePoint,
		Position:  position,
		Forward:   core.NewVec3(0, -1, 0),
		HalfAngle: 180,
		Color:     color,
		Intensity: intensity,
	}
}

// Validate checks the emitter can produce finite rays
func (e Emitter) Validate() error {
	if !e.Position.IsFinite() {
		return fmt.Errorf("%w: non-finite position %v", ErrInvalidEmitter, e.Position)
	}
	if !e.Forward.IsFinite() || e.Forward.LengthSquared() == 0 {
		return fmt.Errorf("%w: forward direction %v", ErrInvalidEmitter, e.Forward)
	}
	if math.IsNaN(e.HalfAngle) || e.HalfAngle < 0 || e.HalfAngle > 180 {
		return fmt.Errorf("%w: half angle %v outside [0,180]", ErrInvalidEmitter, e.HalfAngle)
	}
	if !e.Color.IsFinite() || e.Color.X < 0 || e.Color.Y < 0 || e.Color.Z < 0 {
		return fmt.Errorf("%w: color %v", ErrInvalidEmitter, e.Color)
	}
	if math.IsNaN(e.Radius) || math.IsInf(e.Radius, 0) || e.Radius < 0 {
		return fmt.Errorf("%w: radius %v", ErrInvalidEmitter, e.Radius)
	}
	if math.IsNaN(e.Intensity) || math.IsInf(e.Intensity, 0) || e.Intensity < 0 {
		return fmt.Errorf("%w: intensity %v", ErrInvalidEmitter, e.Intensity)
	}
	return nil
}

// EVToIntensity converts an exposure value to intensity, with intensity 1 at EV 3
func EVToIntensity(ev float64) float64 {
	return math.Pow(2, ev-3)
}
