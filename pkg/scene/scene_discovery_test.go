package scene

import (
	"errors"
	"sort"
	"testing"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/material"
)

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(builtins) {
		t.Fatalf("Expected %d scenes, got %d", len(builtins), len(scenes))
	}
	if !sort.SliceIsSorted(scenes, func(i, j int) bool { return scenes[i].DisplayName < scenes[j].DisplayName }) {
		t.Errorf("Scenes not sorted by display name: %v", scenes)
	}
	for _, info := range scenes {
		if info.ID == "" || info.DisplayName == "" {
			t.Errorf("Scene info missing fields: %+v", info)
		}
	}
}

func TestLoadBuiltinScenes(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Load(info.ID, Options{}, nil)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", info.ID, err)
			}
			if s.ShapeCount() == 0 {
				t.Error("Scene has no shapes")
			}
			if len(s.Emitters) == 0 {
				t.Error("Scene has no emitters")
			}
			for i, e := range s.Emitters {
				if err := e.Validate(); err != nil {
					t.Errorf("Emitter %d invalid: %v", i, err)
				}
			}
			for id := 0; id < s.ShapeCount(); id++ {
				desc, err := s.MaterialOf(core.SurfaceID(id))
				if err != nil {
					t.Fatalf("MaterialOf(%d) failed: %v", id, err)
				}
				if desc.ShadingModel != material.ShadingModelLit {
					t.Errorf("Surface %d has shading model %q", id, desc.ShadingModel)
				}
			}
		})
	}
}

func TestLoadUnknownScene(t *testing.T) {
	if _, err := Load("does-not-exist", Options{}, nil); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestLoadTexturedSceneWithLoader(t *testing.T) {
	var requested string
	loader := func(path string) (*material.ImageTexture, error) {
		requested = path
		return material.NewSolidTexture(core.NewVec3(1, 0, 0), 1), nil
	}

	s, err := Load("textured", Options{FloorTexture: "floor.png"}, loader)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if requested != "floor.png" {
		t.Errorf("Loader called with %q, want floor.png", requested)
	}
	floor, err := s.MaterialOf(0)
	if err != nil {
		t.Fatalf("MaterialOf(0) failed: %v", err)
	}
	got := floor.BaseColorTexture.Sample(core.Vec2{X: 0.5, Y: 0.5})
	if got.Color != core.NewVec3(1, 0, 0) {
		t.Errorf("Floor texture sample = %+v, want red", got)
	}
}

func TestLoadTexturedSceneLoaderError(t *testing.T) {
	loadErr := errors.New("boom")
	loader := func(string) (*material.ImageTexture, error) { return nil, loadErr }

	_, err := Load("textured", Options{FloorTexture: "missing.png"}, loader)
	if !errors.Is(err, loadErr) {
		t.Errorf("Expected wrapped loader error, got %v", err)
	}
}
