// Command viewer shows the light simulation live in a resizable window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/df07/literal-raytracer/pkg/loaders"
	"github.com/df07/literal-raytracer/pkg/renderer"
	"github.com/df07/literal-raytracer/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	sceneID := flag.String("scene", "spotlights", "Scene id")
	configPath := flag.String("config", "", "JSON config file overlaid on the defaults")
	texture := flag.String("texture", "", "Floor texture image for the textured scene")
	ticks := flag.Int("ticks", 4, "Simulation ticks per frame")
	flag.Parse()

	config := renderer.DefaultConfig()
	if *configPath != "" {
		loaded, err := loaders.LoadConfig(*configPath, config)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		config = loaded
	}
	config.SinkMode = renderer.SinkAccumulate

	ids := make([]string, 0)
	for _, info := range scene.ListScenes() {
		ids = append(ids, info.ID)
	}

	g, err := newViewer(*sceneID, ids, scene.Options{FloorTexture: *texture}, config, *ticks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("Literal Raytracer - " + *sceneID)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
