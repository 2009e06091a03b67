package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/literal-raytracer/pkg/core"
)

func TestDiscSpotLightOrigins(t *testing.T) {
	from := core.NewVec3(1, 5, -2)
	to := core.NewVec3(1, 0, -2)
	e := NewDiscSpotLight(from, to, core.White, 30, 0.5, EVToIntensity(10))
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	model, err := NewEmissionModel(testEmissionConfig())
	if err != nil {
		t.Fatalf("NewEmissionModel failed: %v", err)
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))
	forward := to.Subtract(from).Normalize()
	maxOffset := 0.0
	for i := 0; i < 500; i++ {
		ray := model.Emit(e, sampler)
		offset := ray.Origin.Subtract(from)
		if offset.Length() > 0.5+1e-9 {
			t.Fatalf("Origin %v outside disc radius", ray.Origin)
		}
		if math.Abs(offset.Dot(forward)) > 1e-9 {
			t.Fatalf("Origin %v not in the disc plane", ray.Origin)
		}
		if angle := math.Acos(ray.Direction.Dot(forward)); angle > core.Radians(30)+1e-9 {
			t.Fatalf("Direction %v outside cone", ray.Direction)
		}
		maxOffset = max(maxOffset, offset.Length())
	}
	if maxOffset < 0.3 {
		t.Errorf("Origins cluster near the centre (max offset %v)", maxOffset)
	}
}

func TestDiscBasisIsOrthonormal(t *testing.T) {
	for _, n := range []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0.2, 0.3, -0.9),
	} {
		right, up := discBasis(n)
		unit := n.Normalize()
		for _, d := range []float64{right.Dot(up), right.Dot(unit), up.Dot(unit)} {
			if math.Abs(d) > 1e-9 {
				t.Errorf("basis of %v not orthogonal: %v %v", n, right, up)
			}
		}
		if math.Abs(right.Length()-1) > 1e-9 || math.Abs(up.Length()-1) > 1e-9 {
			t.Errorf("basis of %v not unit: %v %v", n, right, up)
		}
	}
}

func TestEmitterRejectsNegativeRadius(t *testing.T) {
	e := NewDiscSpotLight(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 0), core.White, 30, -1, 1)
	if err := e.Validate(); err == nil {
		t.Error("Expected error for negative radius")
	}
}
