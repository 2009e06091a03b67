package integrator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
)

// wall is an infinite plane z = Z facing -z with a single surface id
type wall struct {
	Z       float64
	queries int
}

func (w *wall) Intersect(origin, direction core.Vec3, maxDistance float64) (core.Hit, bool) {
	w.queries++
	if direction.Z <= 0 {
		return core.Hit{}, false
	}
	t := (w.Z - origin.Z) / direction.Z
	if t <= 1e-6 || t > maxDistance {
		return core.Hit{}, false
	}
	p := origin.Add(direction.Multiply(t))
	return core.Hit{
		Point:    p,
		Normal:   core.NewVec3(0, 0, -1),
		Distance: t,
		Surface:  1,
		UV:       core.NewVec2(0.5, 0.5),
	}, true
}

// materials maps every surface to the same descriptor
type materials struct {
	desc material.Descriptor
}

func (m materials) MaterialOf(core.SurfaceID) (material.Descriptor, error) {
	return m.desc, nil
}

func newTestEngine(t *testing.T, desc material.Descriptor, config Config) (*BounceEngine, *wall) {
	t.Helper()
	emission, err := lights.NewEmissionModel(lights.EmissionConfig{
		Distribution: core.DistributionUniform,
		LowerEV:      3,
		UpperEV:      11,
		Policy:       lights.DistanceFixed,
		MaxDistance:  1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := &wall{Z: 10}
	return NewBounceEngine(w, material.NewCache(materials{desc: desc}), emission, config), w
}

func forwardRay() core.Ray {
	return core.Ray{
		Origin:         core.NewVec3(0, 0, 0),
		Direction:      core.NewVec3(0, 0, 1),
		Color:          core.White,
		StartIntensity: 1,
	}
}

func TestBounceWhiteDiffuseWall(t *testing.T) {
	engine, _ := newTestEngine(t, material.NewLit(core.White, 0, 0), Config{
		MinBounces:          0,
		MaxBounces:          1,
		MinBrightness:       0,
		RoughnessSigmaScale: 60,
	})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	result, err := engine.Bounce(forwardRay(), sampler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Hit || !result.Draw {
		t.Fatalf("Expected a drawn hit, got %+v", result)
	}
	if result.End.Subtract(core.NewVec3(0, 0, 10)).Length() > 1e-9 {
		t.Errorf("Expected end (0,0,10), got %v", result.End)
	}
	if len(result.Children) == 0 || len(result.Children) > 2 {
		t.Fatalf("Expected one or two children, got %d", len(result.Children))
	}
	for _, child := range result.Children {
		if child.Origin.Subtract(core.NewVec3(0, 0, 10)).Length() > 1e-9 {
			t.Errorf("Child origin %v, expected (0,0,10)", child.Origin)
		}
		if child.Bounces != 1 {
			t.Errorf("Expected child bounce count 1, got %d", child.Bounces)
		}
		if child.Direction.Z > 1e-9 {
			t.Errorf("Child direction %v re-enters the wall", child.Direction)
		}
		if math.Abs(child.Direction.Length()-1) > 1e-9 {
			t.Errorf("Child direction %v not unit", child.Direction)
		}
	}

	// The children never carry more energy than the parent
	var total float64
	for _, child := range result.Children {
		total += child.Color.Luminance()
	}
	if total > core.White.Luminance()+1e-9 {
		t.Errorf("Children carry %v luminance, more than the parent", total)
	}
}

func TestBounceCeilingStopsLineage(t *testing.T) {
	engine, _ := newTestEngine(t, material.NewLit(core.White, 0, 0), Config{MaxBounces: 1, RoughnessSigmaScale: 60})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	ray := forwardRay()
	ray.Bounces = 1
	result, err := engine.Bounce(ray, sampler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Children) != 0 {
		t.Errorf("Expected no children at the ceiling, got %d", len(result.Children))
	}
	if !result.Draw {
		t.Error("Terminal rays must still be drawn")
	}
}

func TestBounceUnboundedCeiling(t *testing.T) {
	engine, _ := newTestEngine(t, material.NewLit(core.White, 0, 0), Config{MaxBounces: -1, RoughnessSigmaScale: 60})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	ray := forwardRay()
	ray.Bounces = 1000
	result, err := engine.Bounce(ray, sampler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Children) == 0 {
		t.Error("Expected children with an unbounded ceiling")
	}
}

func TestBounceMinBouncesHidesEarlyRays(t *testing.T) {
	engine, _ := newTestEngine(t, material.NewLit(core.White, 0, 0), Config{MinBounces: 1, MaxBounces: 4, RoughnessSigmaScale: 60})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	result, err := engine.Bounce(forwardRay(), sampler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Draw {
		t.Error("A ray below the minimum bounce threshold must not be drawn")
	}
	if len(result.Children) == 0 {
		t.Error("Undrawn rays still bounce")
	}
}

func TestBounceMiss(t *testing.T) {
	engine, w := newTestEngine(t, material.NewLit(core.White, 0, 0), Config{MaxBounces: 4})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	ray := forwardRay()
	ray.Direction = core.NewVec3(0, 1, 0)
	result, err := engine.Bounce(ray, sampler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Hit || len(result.Children) != 0 {
		t.Errorf("Expected a miss with no children, got %+v", result)
	}
	if result.End.Subtract(core.NewVec3(0, 1000, 0)).Length() > 1e-9 {
		t.Errorf("Expected end at max distance, got %v", result.End)
	}
	if w.queries != 1 {
		t.Errorf("Expected exactly one scene query, got %d", w.queries)
	}
}

func TestBounceBrightnessFloor(t *testing.T) {
	// A black dielectric only reflects the ~4% Fresnel term
	engine, _ := newTestEngine(t, material.NewLit(core.Vec3{}, 0, 1), Config{
		MaxBounces:          4,
		MinBrightness:       0.5,
		RoughnessSigmaScale: 60,
	})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	result, err := engine.Bounce(forwardRay(), sampler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Children) != 0 {
		t.Errorf("Expected all children below the floor to be dropped, got %d", len(result.Children))
	}
	if result.Dropped == 0 {
		t.Error("Expected dropped children to be counted")
	}
}

func TestBounceMetalHasNoDiffuse(t *testing.T) {
	engine, _ := newTestEngine(t, material.NewLit(core.NewVec3(1, 0.8, 0.2), 1, 1), Config{MaxBounces: 4, RoughnessSigmaScale: 60})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	// Oblique incidence so the mirror ray leaves the surface
	ray := forwardRay()
	ray.Direction = core.NewVec3(0.6, 0, 0.8)
	result, err := engine.Bounce(ray, sampler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Children) != 1 {
		t.Fatalf("Expected only the specular child, got %d", len(result.Children))
	}

	// Perfectly smooth: exact mirror direction
	expected := core.NewVec3(0.6, 0, -0.8)
	if result.Children[0].Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected mirror direction %v, got %v", expected, result.Children[0].Direction)
	}
}

func TestBounceUnsupportedMaterial(t *testing.T) {
	desc := material.NewLit(core.White, 0, 0)
	desc.ShadingModel = "hair"
	engine, _ := newTestEngine(t, desc, Config{MaxBounces: 4})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	_, err := engine.Bounce(forwardRay(), sampler)
	if !errors.Is(err, material.ErrUnsupportedShadingModel) {
		t.Errorf("Expected ErrUnsupportedShadingModel, got %v", err)
	}
}

func TestBounceLineageCeilingProperty(t *testing.T) {
	const maxBounces = 3
	engine, _ := newTestEngine(t, material.NewLit(core.White, 0.5, 0.5), Config{MaxBounces: maxBounces, RoughnessSigmaScale: 60})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(9)))

	// Bouncing between two mirrored walls is not modelled; instead feed
	// children back with flipped direction so each generation hits again.
	queue := []core.Ray{forwardRay()}
	for len(queue) > 0 {
		ray := queue[0]
		queue = queue[1:]
		if ray.Bounces > maxBounces {
			t.Fatalf("Dequeued ray with %d bounces, ceiling %d", ray.Bounces, maxBounces)
		}
		result, err := engine.Bounce(ray, sampler)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, child := range result.Children {
			child.Origin = core.Vec3{}
			child.Direction = child.Direction.Negate()
			queue = append(queue, child)
		}
	}
}

func TestBounceSkipsDrawAtIntensityFloor(t *testing.T) {
	emission, err := lights.NewEmissionModel(lights.EmissionConfig{
		Distribution: core.DistributionUniform,
		LowerEV:      3, // intensity 1
		UpperEV:      11,
		Policy:       lights.DistanceAttenuation,
		MaxDistance:  1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine := NewBounceEngine(&wall{Z: 10}, material.NewCache(materials{desc: material.NewLit(core.White, 0, 0.5)}), emission, Config{
		MaxBounces:          -1,
		MinBrightness:       0.001,
		RoughnessSigmaScale: 60,
	})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	tests := []struct {
		name      string
		intensity float64
		wantDraw  bool
	}{
		{"below lower bound", 0.5, false},
		{"at lower bound", 1, false},
		{"above lower bound", 64, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := forwardRay()
			ray.StartIntensity = tt.intensity
			result, err := engine.Bounce(ray, sampler)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Draw != tt.wantDraw {
				t.Errorf("Expected draw %v for intensity %v, got %v", tt.wantDraw, tt.intensity, result.Draw)
			}
		})
	}
}
