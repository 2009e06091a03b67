package geometry

import (
	"math"
	"testing"

	"github.com/df07/literal-raytracer/pkg/core"
)

func TestCameraLocalRoundTrip(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(4, 0, -2)
	camera := NewCamera(config)

	points := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(4, 0, -2),
		core.NewVec3(-7, 3, 11),
	}
	for _, p := range points {
		back := camera.ToWorld(camera.ToLocal(p))
		if back.Subtract(p).Length() > 1e-9 {
			t.Errorf("Round trip of %v gave %v", p, back)
		}
	}

	// The look-at target lies straight ahead on +z
	target := camera.ToLocal(config.LookAt)
	expectedDepth := config.LookAt.Subtract(config.Center).Length()
	if math.Abs(target.Z-expectedDepth) > 1e-9 || math.Abs(target.X) > 1e-9 || math.Abs(target.Y) > 1e-9 {
		t.Errorf("Expected look-at at (0,0,%v), got %v", expectedDepth, target)
	}
}

func TestWorldToScreen(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig()) // 400x300 looking down -z
	w, h := float64(camera.Width()), float64(camera.Height())

	tests := []struct {
		name   string
		point  core.Vec3
		check  func(s core.Vec3) bool
		expect string
	}{
		{
			name:   "straight ahead maps to centre",
			point:  core.NewVec3(0, 0, -5),
			check:  func(s core.Vec3) bool { return math.Abs(s.X-w/2) < 1e-9 && math.Abs(s.Y-h/2) < 1e-9 && math.Abs(s.Z-5) < 1e-9 },
			expect: "centre at depth 5",
		},
		{
			name:   "right of centre",
			point:  core.NewVec3(1, 0, -5),
			check:  func(s core.Vec3) bool { return s.X > w/2 && math.Abs(s.Y-h/2) < 1e-9 },
			expect: "x right of centre",
		},
		{
			name:   "above centre has larger y",
			point:  core.NewVec3(0, 1, -5),
			check:  func(s core.Vec3) bool { return s.Y > h/2 },
			expect: "y above centre",
		},
		{
			name:   "behind camera has negative depth and mirrored x",
			point:  core.NewVec3(1, 0, 5),
			check:  func(s core.Vec3) bool { return s.Z < 0 && s.X < w/2 },
			expect: "negative depth, x left of centre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := camera.WorldToScreen(tt.point)
			if !tt.check(s) {
				t.Errorf("Expected %s, got %v", tt.expect, s)
			}
		})
	}
}

func TestCameraResize(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig())
	camera.Resize(800, 600)
	if camera.Width() != 800 || camera.Height() != 600 {
		t.Fatalf("Expected 800x600, got %dx%d", camera.Width(), camera.Height())
	}
	s := camera.WorldToScreen(core.NewVec3(0, 0, -5))
	if math.Abs(s.X-400) > 1e-9 || math.Abs(s.Y-300) > 1e-9 {
		t.Errorf("Expected centre (400,300) after resize, got %v", s)
	}
}

func TestPixelRayInvertsWorldToScreen(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(2, 1, 5)
	config.LookAt = core.NewVec3(0, 0, 0)
	camera := NewCamera(config)

	// The screen centre looks at the target
	_, dir := camera.PixelRay(float64(config.Width)/2, float64(config.Height)/2)
	want := config.LookAt.Subtract(config.Center).Normalize()
	if dir.Subtract(want).Length() > 1e-9 {
		t.Errorf("Centre ray direction = %v, want %v", dir, want)
	}

	pixels := [][2]float64{{0.5, 0.5}, {100, 250}, {399.5, 10}}
	for _, p := range pixels {
		origin, dir := camera.PixelRay(p[0], p[1])
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Errorf("Direction %v not unit length", dir)
		}
		screen := camera.WorldToScreen(origin.Add(dir.Multiply(7)))
		if math.Abs(screen.X-p[0]) > 1e-6 || math.Abs(screen.Y-p[1]) > 1e-6 {
			t.Errorf("PixelRay(%v) projects back to (%v, %v)", p, screen.X, screen.Y)
		}
		if screen.Z <= 0 {
			t.Errorf("Expected positive depth, got %v", screen.Z)
		}
	}
}
