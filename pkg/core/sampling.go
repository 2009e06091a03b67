package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Sampler provides random sampling for the simulation.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Distribution selects how the polar deviation from a cone axis is drawn
type Distribution string

const (
	// DistributionUniform spreads directions uniformly over the cone's solid angle
	DistributionUniform Distribution = "uniform"
	// DistributionGaussianCenter clusters directions around the cone axis
	DistributionGaussianCenter Distribution = "gaussian-center"
	// DistributionGaussianEdge clusters directions near the cone edge
	DistributionGaussianEdge Distribution = "gaussian-edge"
)

// ParseDistribution validates a distribution name
func ParseDistribution(name string) (Distribution, error) {
	switch d := Distribution(name); d {
	case DistributionUniform, DistributionGaussianCenter, DistributionGaussianEdge:
		return d, nil
	default:
		return "", fmt.Errorf("unknown angular distribution %q", name)
	}
}

// maxGaussianAttempts bounds the rejection loop in ClampedGaussian
const maxGaussianAttempts = 64

// ClampedGaussian draws a normal deviate with the given mean and sigma,
// rejecting candidates outside [lo, hi]. After maxGaussianAttempts
// rejections the last candidate is clamped into range.
func ClampedGaussian(sampler Sampler, mu, sigma, lo, hi float64) float64 {
	if sigma <= 0 || lo >= hi {
		return max(lo, min(hi, mu))
	}

	candidate := mu
	for attempt := 0; attempt < maxGaussianAttempts; attempt++ {
		// Polar Box-Muller
		var x1, x2, w float64
		for {
			x1 = 2*sampler.Get1D() - 1
			x2 = 2*sampler.Get1D() - 1
			w = x1*x1 + x2*x2
			if w > 0 && w < 1 {
				break
			}
		}
		w = math.Sqrt(-2 * math.Log(w) / w)
		candidate = x1*w*sigma + mu
		if candidate >= lo && candidate <= hi {
			return candidate
		}
	}
	return max(lo, min(hi, candidate))
}

// PolarDeviation draws a polar angle in radians within [0, halfAngle]
// (or a signed angle for the Gaussian variants) from the given distribution.
// sigma is in radians and only used by the Gaussian variants.
func PolarDeviation(sampler Sampler, dist Distribution, halfAngle, sigma float64) float64 {
	if halfAngle <= 0 {
		return 0
	}
	switch dist {
	case DistributionGaussianCenter:
		return ClampedGaussian(sampler, 0, sigma, -halfAngle, halfAngle)
	case DistributionGaussianEdge:
		return ClampedGaussian(sampler, halfAngle, sigma, 0, halfAngle)
	default:
		// Uniform over solid angle: cos(theta) uniform in [cos(half), 1]
		cosHalf := math.Cos(min(halfAngle, math.Pi))
		cosTheta := 1 - sampler.Get1D()*(1-cosHalf)
		return math.Acos(max(-1, min(1, cosTheta)))
	}
}

// ConeDirection rotates the forward axis by polar (radians, about the
// local up axis) and then rolls the result by roll (radians) about
// forward. The result is unit length.
func ConeDirection(forward Vec3, polar, roll float64) Vec3 {
	axis := forward.Normalize()
	if axis.LengthSquared() == 0 {
		return axis
	}
	z := mgl64.Vec3{0, 0, 1}
	local := mgl64.QuatRotate(roll, z).Mul(mgl64.QuatRotate(polar, mgl64.Vec3{0, 1, 0}))
	return FromMgl(orientFromZ(axis.Mgl()).Mul(local).Rotate(z)).Normalize()
}

// orientFromZ returns the rotation taking +z onto the unit vector axis.
// mgl64.QuatBetweenVectors snaps anything within a few degrees of -z to
// a fixed half turn, so the angle comes from atan2 of the cross and dot
// products instead.
func orientFromZ(axis mgl64.Vec3) mgl64.Quat {
	z := mgl64.Vec3{0, 0, 1}
	cross := z.Cross(axis)
	sin := cross.Len()
	cos := z.Dot(axis)
	if sin < 1e-12 {
		if cos > 0 {
			return mgl64.QuatIdent()
		}
		return mgl64.QuatRotate(math.Pi, mgl64.Vec3{1, 0, 0})
	}
	return mgl64.QuatRotate(math.Atan2(sin, cos), cross.Mul(1/sin))
}

// SampleCone draws a direction around forward using the distribution,
// with a uniformly random roll.
func SampleCone(sampler Sampler, forward Vec3, dist Distribution, halfAngle, sigma float64) Vec3 {
	roll := 2 * math.Pi * sampler.Get1D()
	polar := PolarDeviation(sampler, dist, halfAngle, sigma)
	return ConeDirection(forward, polar, roll)
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return mgl64.DegToRad(degrees)
}
