package integrator

import (
	"fmt"
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
)

// Config contains the bounce limits and termination thresholds
type Config struct {
	MinBounces          int     // rays with fewer bounces are traced but not drawn
	MaxBounces          int     // rays at this depth spawn no children; negative = unbounded
	MinBrightness       float64 // children dimmer than this are discarded
	RoughnessSigmaScale float64 // normal perturbation sigma in degrees at smoothness 0
}

// minReflectedLength guards against a degenerate reflection vector
const minReflectedLength = 1e-9

// BounceResult is the outcome of tracing one ray
type BounceResult struct {
	End      core.Vec3 // hit point, or origin + maxDistance*direction
	Hit      bool
	Draw     bool // ray cleared the minimum bounce threshold
	Children []core.Ray
	Dropped  int // children discarded by the brightness floor
}

// BounceEngine traces a ray to its first hit and splits its energy into
// specular and diffuse children
type BounceEngine struct {
	scene     core.Intersector
	materials *material.Cache
	emission  *lights.EmissionModel
	config    Config
}

// NewBounceEngine creates a bounce engine
func NewBounceEngine(scene core.Intersector, materials *material.Cache, emission *lights.EmissionModel, config Config) *BounceEngine {
	return &BounceEngine{
		scene:     scene,
		materials: materials,
		emission:  emission,
		config:    config,
	}
}

// Bounce traces ray once. Children are appended to the result and not
// traced; the caller re-queues them.
func (b *BounceEngine) Bounce(ray core.Ray, sampler core.Sampler) (BounceResult, error) {
	maxDistance := b.emission.MaxDistance(ray)

	var hit core.Hit
	var ok bool
	if maxDistance > 0 {
		hit, ok = b.scene.Intersect(ray.Origin, ray.Direction, maxDistance)
	}

	result := BounceResult{Hit: ok}
	if ok {
		result.End = hit.Point
	} else {
		result.End = ray.At(maxDistance)
	}

	// Decided before termination so terminal rays are still drawn. A ray
	// with no normalized intensity would only deposit black.
	result.Draw = ray.Bounces >= b.config.MinBounces && b.emission.NormalizedIntensity(ray) > 0

	if !ok || b.atCeiling(ray) {
		return result, nil
	}

	snapshot, err := b.materials.Sample(hit.Surface, hit.UV)
	if err != nil {
		return result, fmt.Errorf("bounce at %v: %w", hit.Point, err)
	}

	normal := hit.Normal.Normalize()
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}
	intensity := b.emission.Propagate(ray.StartIntensity, hit.Distance)

	// Rougher surfaces randomize the mirror direction more
	sigma := core.Radians((1 - snapshot.Smoothness) * b.config.RoughnessSigmaScale)
	perturbed := core.SampleCone(sampler, normal, core.DistributionGaussianCenter, math.Pi/2, sigma)

	reflectance := BaseReflectance(snapshot.Metallic)
	reflected := ray.Direction.Reflect(perturbed)
	validReflection := reflected.IsFinite() && reflected.Length() > minReflectedLength
	if validReflection {
		reflected = reflected.Normalize()
		reflectance = SchlickReflectance(reflectance, perturbed.Dot(reflected))
	}
	specular, diffuse := EnergySplit(reflectance, snapshot.Metallic)

	if validReflection && reflected.Dot(normal) > 0 {
		tint := core.White.Lerp(snapshot.BaseColor, snapshot.Metallic)
		color := ray.Color.MultiplyVec(tint).Multiply(specular)
		b.enqueue(&result, ray.Child(hit.Point, reflected, color, intensity))
	}

	if diffuse > 0 {
		direction := core.SampleCone(sampler, normal, core.DistributionUniform, math.Pi/2, 0)
		color := ray.Color.MultiplyVec(snapshot.BaseColor).Multiply(diffuse)
		b.enqueue(&result, ray.Child(hit.Point, direction, color, intensity))
	}

	return result, nil
}

// atCeiling reports whether the ray may not spawn children
func (b *BounceEngine) atCeiling(ray core.Ray) bool {
	return b.config.MaxBounces >= 0 && ray.Bounces >= b.config.MaxBounces
}

// enqueue keeps a child only if it is bright enough to matter
func (b *BounceEngine) enqueue(result *BounceResult, child core.Ray) {
	if !child.Direction.IsFinite() || !child.Color.IsFinite() ||
		b.emission.Brightness(child) < b.config.MinBrightness {
		result.Dropped++
		return
	}
	result.Children = append(result.Children, child)
}
