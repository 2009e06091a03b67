package main

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/renderer"
	"github.com/df07/literal-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		texture     string
		expectError bool
	}{
		{"spotlights scene", "spotlights", "", false},
		{"cornell scene", "cornell", "", false},
		{"spheregrid scene", "spheregrid", "", false},
		{"textured scene", "textured", "", false},

		{"unknown scene", "nonexistent", "", true},
		{"empty scene name", "", "", true},
		{"missing texture", "textured", "does/not/exist.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, tt.texture)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for scene type '%s'", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width <= 0 || s.CameraConfig.Height <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
			}
		})
	}
}

func TestBuildConfig(t *testing.T) {
	s := scene.NewCornellScene()

	t.Run("scene resolution by default", func(t *testing.T) {
		config, err := buildConfig(options{}, s)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if config.Width != s.CameraConfig.Width || config.Height != s.CameraConfig.Height {
			t.Errorf("Resolution = %dx%d, want scene camera size", config.Width, config.Height)
		}
		if config.ActiveRayTarget != renderer.DefaultConfig().ActiveRayTarget {
			t.Errorf("ActiveRayTarget = %d, want default", config.ActiveRayTarget)
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"activeRayTarget": 50, "maxBounces": 4}`), 0o644); err != nil {
			t.Fatal(err)
		}
		config, err := buildConfig(options{config: path, rays: 75, width: 32, sink: "segments", policy: "attenuation"}, s)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if config.ActiveRayTarget != 75 {
			t.Errorf("ActiveRayTarget = %d, want 75", config.ActiveRayTarget)
		}
		if config.MaxBounces != 4 {
			t.Errorf("MaxBounces = %d, want 4 from file", config.MaxBounces)
		}
		if config.Width != 32 {
			t.Errorf("Width = %d, want 32", config.Width)
		}
		if config.SinkMode != renderer.SinkSegments {
			t.Errorf("SinkMode = %q", config.SinkMode)
		}
		if config.DistancePolicy != lights.DistanceAttenuation {
			t.Errorf("DistancePolicy = %q", config.DistancePolicy)
		}
	})

	t.Run("invalid sink", func(t *testing.T) {
		_, err := buildConfig(options{sink: "printer"}, s)
		if !errors.Is(err, renderer.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		sceneType string
		expected  string
	}{
		{"spotlights", filepath.Join("output", "spotlights")},
		{"cornell", filepath.Join("output", "cornell")},
		{"nested/name", filepath.Join("output", "name")},
	}

	for _, tt := range tests {
		t.Run(tt.sceneType, func(t *testing.T) {
			if got := createOutputDir(tt.sceneType); got != tt.expected {
				t.Errorf("createOutputDir(%q) = %q, want %q", tt.sceneType, got, tt.expected)
			}
		})
	}
}

func TestSavePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	filename, err := savePNG(dir, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("savePNG failed: %v", err)
	}
	if !strings.HasPrefix(filename, dir) || !strings.HasSuffix(filename, ".png") {
		t.Errorf("Unexpected filename %q", filename)
	}
	if _, err := os.Stat(filename); err != nil {
		t.Errorf("File not written: %v", err)
	}
}

func TestRunSegments(t *testing.T) {
	s := scene.NewSpotlightsScene()
	config, err := buildConfig(options{width: 40, height: 30, rays: 20, sink: "segments"}, s)
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if err := runSegments(config, s.Host(config.Width, config.Height), 5); err != nil {
		t.Errorf("runSegments failed: %v", err)
	}
}
