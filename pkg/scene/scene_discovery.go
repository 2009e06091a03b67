package scene

import (
	"fmt"
	"sort"

	"github.com/df07/literal-raytracer/pkg/material"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

// Options carries host supplied inputs some scenes accept
type Options struct {
	FloorTexture string // image file for the textured scene's floor
}

// TextureLoader loads an image file into a texture
type TextureLoader func(path string) (*material.ImageTexture, error)

type builtin struct {
	info  SceneInfo
	build func(Options, TextureLoader) (*Scene, error)
}

var builtins = map[string]builtin{
	"spotlights": {
		info: SceneInfo{ID: "spotlights", DisplayName: "Spotlights", Description: "Three coloured spot lights over a mirror and a matte sphere"},
		build: func(Options, TextureLoader) (*Scene, error) {
			return NewSpotlightsScene(), nil
		},
	},
	"cornell": {
		info: SceneInfo{ID: "cornell", DisplayName: "Cornell Box", Description: "Classic Cornell box with a ceiling spot light"},
		build: func(Options, TextureLoader) (*Scene, error) {
			return NewCornellScene(), nil
		},
	},
	"spheregrid": {
		info: SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Hue against metallic and smoothness"},
		build: func(Options, TextureLoader) (*Scene, error) {
			return NewSphereGridScene(), nil
		},
	},
	"textured": {
		info: SceneInfo{ID: "textured", DisplayName: "Textured", Description: "Base color and mask textures"},
		build: func(opts Options, load TextureLoader) (*Scene, error) {
			if opts.FloorTexture == "" || load == nil {
				return NewTexturedScene(nil), nil
			}
			tex, err := load(opts.FloorTexture)
			if err != nil {
				return nil, fmt.Errorf("floor texture: %w", err)
			}
			return NewTexturedScene(tex), nil
		},
	},
}

// ListScenes returns the built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// Load builds a built-in scene by id
func Load(id string, opts Options, load TextureLoader) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return b.build(opts, load)
}
