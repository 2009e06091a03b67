package lights

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/literal-raytracer/pkg/core"
)

func testEmissionConfig() EmissionConfig {
	return EmissionConfig{
		Distribution: core.DistributionUniform,
		LowerEV:      3,  // intensity 1
		UpperEV:      11, // intensity 256
		Policy:       DistanceFixed,
		MaxDistance:  1000,
	}
}

func TestEVToIntensity(t *testing.T) {
	tests := []struct {
		ev       float64
		expected float64
	}{
		{3, 1},
		{4, 2},
		{0, 0.125},
		{16, 8192},
	}
	for _, tt := range tests {
		if got := EVToIntensity(tt.ev); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("EVToIntensity(%v): expected %v, got %v", tt.ev, tt.expected, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	model, err := NewEmissionModel(testEmissionConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		intensity float64
		expected  float64
	}{
		{"below lower bound", 0.5, 0},
		{"at lower bound", 1, 0},
		{"midpoint", 128.5, 0.5},
		{"at upper bound", 256, 1},
		{"above upper bound", 1e6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.Normalize(tt.intensity); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEmitZeroConeIsExact(t *testing.T) {
	model, err := NewEmissionModel(testEmissionConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	targets := []core.Vec3{
		core.NewVec3(0, 0, 5),
		core.NewVec3(0, 0, -5),
		core.NewVec3(0.15, 0, -5),
		core.NewVec3(0, -0.2, -5),
	}
	for _, to := range targets {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
		emitter := NewPointSpotLight(core.NewVec3(0, 0, 0), to, core.White, 0, 256)
		want := to.Normalize()

		for i := 0; i < 100; i++ {
			ray := model.Emit(emitter, sampler)
			if ray.Direction.Subtract(want).Length() > 1e-9 {
				t.Fatalf("Expected direction %v towards %v, got %v", want, to, ray.Direction)
			}
			if ray.StartIntensity != 1 {
				t.Fatalf("Expected normalized intensity 1, got %v", ray.StartIntensity)
			}
			if ray.Bounces != 0 {
				t.Fatalf("Expected fresh ray, got %d bounces", ray.Bounces)
			}
		}
	}
}

func TestEmitStaysWithinCone(t *testing.T) {
	distributions := []core.Distribution{
		core.DistributionUniform,
		core.DistributionGaussianCenter,
		core.DistributionGaussianEdge,
	}
	forward := core.NewVec3(1, 2, -0.5).Normalize()
	halfAngle := 30.0
	cosHalf := math.Cos(halfAngle * math.Pi / 180)

	for _, dist := range distributions {
		t.Run(string(dist), func(t *testing.T) {
			cfg := testEmissionConfig()
			cfg.Distribution = dist
			cfg.SigmaDegrees = 10
			model, err := NewEmissionModel(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))
			emitter := NewPointSpotLight(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1).Add(forward), core.White, halfAngle, 10)

			var sumCos float64
			const n = 2000
			for i := 0; i < n; i++ {
				ray := model.Emit(emitter, sampler)
				if math.Abs(ray.Direction.Length()-1) > 1e-9 {
					t.Fatalf("Direction not unit: %v", ray.Direction)
				}
				cos := ray.Direction.Dot(forward)
				if cos < cosHalf-1e-9 {
					t.Fatalf("Direction %v outside cone (cos %v < %v)", ray.Direction, cos, cosHalf)
				}
				sumCos += cos
			}

			// Edge-biased emission sits further from the axis than center-biased
			mean := sumCos / n
			switch dist {
			case core.DistributionGaussianCenter:
				if mean < 0.97 {
					t.Errorf("Expected center-biased mean cosine >= 0.97, got %v", mean)
				}
			case core.DistributionGaussianEdge:
				if mean > 0.95 {
					t.Errorf("Expected edge-biased mean cosine <= 0.95, got %v", mean)
				}
			}
		})
	}
}

func TestEmitRoundRobinColors(t *testing.T) {
	model, err := NewEmissionModel(testEmissionConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	emitter := NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 0.5, 0.25), 256)

	ray := model.Emit(emitter, sampler)
	if ray.Color != emitter.Color {
		t.Errorf("Expected emitter color %v, got %v", emitter.Color, ray.Color)
	}
	if ray.Origin != emitter.Position {
		t.Errorf("Expected origin %v, got %v", emitter.Position, ray.Origin)
	}
}

func TestAttenuationPolicy(t *testing.T) {
	cfg := testEmissionConfig()
	cfg.Policy = DistanceAttenuation
	cfg.MaxDistance = 1e6
	model, err := NewEmissionModel(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raw intensity 101 decays to the lower bound 1 at d = sqrt(101/1 - 1) = 10
	ray := core.Ray{Color: core.White, StartIntensity: 101}
	if d := model.MaxDistance(ray); math.Abs(d-10) > 1e-9 {
		t.Errorf("Expected max distance 10, got %v", d)
	}

	// Intensity at the end of that distance is exactly the lower bound
	if got := model.Propagate(101, 10); math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected propagated intensity 1, got %v", got)
	}

	// A ray at or below the lower bound does not travel
	if d := model.MaxDistance(core.Ray{StartIntensity: 1}); d != 0 {
		t.Errorf("Expected 0 distance at lower bound, got %v", d)
	}

	// Cap applies
	cfg.MaxDistance = 5
	capped, _ := NewEmissionModel(cfg)
	if d := capped.MaxDistance(ray); d != 5 {
		t.Errorf("Expected capped distance 5, got %v", d)
	}

	// Raw intensity is carried and normalized on demand
	emitted := model.Emit(NewPointLight(core.Vec3{}, core.White, 128.5), core.NewRandomSampler(rand.New(rand.NewSource(3))))
	if emitted.StartIntensity != 128.5 {
		t.Errorf("Expected raw intensity, got %v", emitted.StartIntensity)
	}
	if n := model.NormalizedIntensity(emitted); math.Abs(n-0.5) > 1e-9 {
		t.Errorf("Expected normalized 0.5, got %v", n)
	}
}

func TestInverseAttenuation(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1, 3, 100} {
		if got := InverseAttenuation(Attenuation(d)); math.Abs(got-d) > 1e-6*max(1, d) {
			t.Errorf("Round trip for %v gave %v", d, got)
		}
	}
	if got := InverseAttenuation(1.5); got != 0 {
		t.Errorf("Expected 0 for attenuation above 1, got %v", got)
	}
	if got := InverseAttenuation(0); !math.IsInf(got, 1) {
		t.Errorf("Expected +Inf for zero attenuation, got %v", got)
	}
}

func TestEmitterValidate(t *testing.T) {
	tests := []struct {
		name    string
		emitter Emitter
		wantErr bool
	}{
		{"valid spot", NewPointSpotLight(core.Vec3{}, core.NewVec3(0, 0, 1), core.White, 20, 10), false},
		{"valid point", NewPointLight(core.Vec3{}, core.White, 10), false},
		{"zero forward", NewPointSpotLight(core.Vec3{}, core.Vec3{}, core.White, 20, 10), true},
		{"nan forward", Emitter{Forward: core.NewVec3(math.NaN(), 0, 1), Color: core.White}, true},
		{"negative intensity", NewPointLight(core.Vec3{}, core.White, -1), true},
		{"negative color", NewPointLight(core.Vec3{}, core.NewVec3(-1, 0, 0), 1), true},
		{"angle too wide", NewPointSpotLight(core.Vec3{}, core.NewVec3(0, 0, 1), core.White, 200, 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.emitter.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidEmitter) {
				t.Errorf("Expected ErrInvalidEmitter, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestNewEmissionModelRejectsBadConfig(t *testing.T) {
	mutations := map[string]func(*EmissionConfig){
		"inverted EV bounds": func(c *EmissionConfig) { c.LowerEV, c.UpperEV = 10, 5 },
		"zero max distance":  func(c *EmissionConfig) { c.MaxDistance = 0 },
		"unknown policy":     func(c *EmissionConfig) { c.Policy = "sometimes" },
		"unknown dist":       func(c *EmissionConfig) { c.Distribution = "triangular" },
		"negative sigma":     func(c *EmissionConfig) { c.SigmaDegrees = -1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := testEmissionConfig()
			mutate(&cfg)
			if _, err := NewEmissionModel(cfg); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
