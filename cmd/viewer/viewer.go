package main

import (
	"fmt"

	"github.com/df07/literal-raytracer/pkg/loaders"
	"github.com/df07/literal-raytracer/pkg/renderer"
	"github.com/df07/literal-raytracer/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// viewer is the ebiten game driving one tick batch per frame.
// Space pauses, R clears the image, Tab cycles scenes, H toggles the overlay.
type viewer struct {
	scenes  []string
	current int
	opts    scene.Options
	config  renderer.Config
	ticks   int

	raytracer *renderer.ProgressiveRaytracer
	frame     *ebiten.Image
	width     int
	height    int
	pass      int
	last      renderer.TickStats
	stats     renderer.RenderStats

	paused  bool
	overlay bool
}

func newViewer(sceneID string, scenes []string, opts scene.Options, config renderer.Config, ticks int) (*viewer, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("ticks per frame must be positive, got %d", ticks)
	}
	current := -1
	for i, id := range scenes {
		if id == sceneID {
			current = i
		}
	}
	if current < 0 {
		return nil, fmt.Errorf("unknown scene %q", sceneID)
	}

	v := &viewer{
		scenes:  scenes,
		current: current,
		opts:    opts,
		config:  config,
		ticks:   ticks,
		overlay: true,
	}
	if err := v.load(); err != nil {
		return nil, err
	}
	return v, nil
}

// load builds the current scene at the scene camera's resolution
func (v *viewer) load() error {
	s, err := scene.Load(v.scenes[v.current], v.opts, loaders.LoadImage)
	if err != nil {
		return err
	}

	config := v.config
	if v.width > 0 && v.height > 0 {
		config.Width, config.Height = v.width, v.height
	} else {
		config.Width, config.Height = s.CameraConfig.Width, s.CameraConfig.Height
	}

	rt, err := renderer.NewProgressiveRaytracer(config, s.Host(config.Width, config.Height),
		renderer.ProgressiveConfig{TicksPerPass: v.ticks, MaxPasses: 1}, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}
	v.raytracer = rt
	v.width, v.height = config.Width, config.Height
	v.pass = 0
	ebiten.SetWindowTitle("Literal Raytracer - " + v.scenes[v.current])
	return nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.raytracer.Accumulator().Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.overlay = !v.overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.current = (v.current + 1) % len(v.scenes)
		if err := v.load(); err != nil {
			return err
		}
	}

	if v.paused {
		return nil
	}

	v.pass++
	_, stats, ticks, err := v.raytracer.RenderPass(v.pass)
	if err != nil {
		return err
	}
	v.stats, v.last = stats, ticks
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	img := v.raytracer.Accumulator().Image()
	if v.frame == nil || v.frame.Bounds().Dx() != v.width || v.frame.Bounds().Dy() != v.height {
		if v.frame != nil {
			v.frame.Deallocate()
		}
		v.frame = ebiten.NewImage(v.width, v.height)
	}
	v.frame.WritePixels(img.Pix)
	screen.DrawImage(v.frame, nil)

	if v.overlay {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"%s  %dx%d  tps %.0f\nrays %d  drawn %d  culled %d  queue %d\nsamples/pixel %.2f  covered %d%s",
			v.scenes[v.current], v.width, v.height, ebiten.ActualTPS(),
			v.last.Traced, v.last.Drawn, v.last.Culled, v.last.QueueLen,
			v.stats.AverageSamples, v.stats.CoveredPixels, pausedLabel(v.paused)))
	}
}

// Layout follows the window size; a new size restarts accumulation
func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != v.width || outsideHeight != v.height) {
		if err := v.raytracer.Scheduler().Resize(outsideWidth, outsideHeight); err == nil {
			v.width, v.height = outsideWidth, outsideHeight
		}
	}
	return v.width, v.height
}

func pausedLabel(paused bool) string {
	if paused {
		return "  [paused]"
	}
	return ""
}
