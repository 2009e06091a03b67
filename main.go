package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/loaders"
	"github.com/df07/literal-raytracer/pkg/renderer"
	"github.com/df07/literal-raytracer/pkg/scene"
)

// options holds the command line flags
type options struct {
	scene      string
	config     string
	texture    string
	width      int
	height     int
	rays       int
	seed       int64
	sink       string
	passes     int
	ticks      int
	policy     string
	maxBounces int
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "spotlights", "Scene id (see -help)")
	flag.StringVar(&opts.config, "config", "", "JSON config file overlaid on the defaults")
	flag.StringVar(&opts.texture, "texture", "", "Floor texture image for the textured scene")
	flag.IntVar(&opts.width, "width", 0, "Output width (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Output height (0 = scene default)")
	flag.IntVar(&opts.rays, "rays", 0, "Active ray target (0 = config value)")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = config value)")
	flag.StringVar(&opts.sink, "sink", "", "Sink mode: 'accumulate' or 'segments' (empty = config value)")
	flag.IntVar(&opts.passes, "passes", 10, "Number of progressive passes")
	flag.IntVar(&opts.ticks, "ticks", 200, "Simulation ticks per pass")
	flag.StringVar(&opts.policy, "distance", "", "Distance policy: 'fixed' or 'attenuation' (empty = config value)")
	flag.IntVar(&opts.maxBounces, "max-bounces", 0, "Bounce ceiling (0 = config value)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Literal Raytracer")
		fmt.Println("Usage: literal-raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-12s %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	fmt.Println("Starting Literal Raytracer...")

	s, err := createScene(opts.scene, opts.texture)
	if err != nil {
		return err
	}

	config, err := buildConfig(opts, s)
	if err != nil {
		return err
	}
	host := s.Host(config.Width, config.Height)

	if config.SinkMode == renderer.SinkSegments {
		return runSegments(config, host, opts.passes*opts.ticks)
	}

	raytracer, err := renderer.NewProgressiveRaytracer(config, host, renderer.ProgressiveConfig{
		TicksPerPass: opts.ticks,
		MaxPasses:    opts.passes,
	}, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	startTime := time.Now()
	passChan, errChan := raytracer.RenderProgressive(context.Background())

	var final renderer.PassResult
	for result := range passChan {
		final = result
	}
	if err := <-errChan; err != nil {
		return err
	}
	if final.Image == nil {
		return fmt.Errorf("no passes rendered")
	}

	totals := raytracer.Totals()
	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Rays traced: %d, segments drawn: %d, culled: %d\n", totals.Traced, totals.Drawn, totals.Culled)
	fmt.Printf("Samples per pixel: %.2f (max %d, %d of %d pixels covered)\n",
		final.Stats.AverageSamples, final.Stats.MaxSamplesUsed, final.Stats.CoveredPixels, final.Stats.TotalPixels)
	fmt.Printf("Average luminance: %.4f, materials cached: %d\n",
		renderer.CalculateAverageLuminance(final.Image), raytracer.Scheduler().CachedMaterials())

	filename, err := savePNG(createOutputDir(opts.scene), final.Image)
	if err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// runSegments drives the simulation for a host that rasterizes segments
// itself and reports what was produced
func runSegments(config renderer.Config, host renderer.Host, ticks int) error {
	collector := renderer.NewSegmentCollector(nil)
	scheduler, err := renderer.NewScheduler(config, host, collector)
	if err != nil {
		return err
	}

	var totals renderer.TickStats
	for i := 0; i < ticks; i++ {
		stats, err := scheduler.Tick()
		totals.Add(stats)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
	}

	fmt.Printf("Ticks: %d, rays traced: %d, segments: %d (last tick %d), queue: %d\n",
		scheduler.Ticks(), totals.Traced, collector.Total(), len(collector.Segments()), scheduler.QueueLen())
	return nil
}

// createScene builds a built-in scene, loading the floor texture from disk
// when one is given
func createScene(sceneType, texture string) (*scene.Scene, error) {
	return scene.Load(sceneType, scene.Options{FloorTexture: texture}, loaders.LoadImage)
}

// buildConfig layers the config file and then explicit flags over the
// defaults. Resolution falls back to the scene camera.
func buildConfig(opts options, s *scene.Scene) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	config.Width = s.CameraConfig.Width
	config.Height = s.CameraConfig.Height

	if opts.config != "" {
		loaded, err := loaders.LoadConfig(opts.config, config)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if opts.width > 0 {
		config.Width = opts.width
	}
	if opts.height > 0 {
		config.Height = opts.height
	}
	if opts.rays > 0 {
		config.ActiveRayTarget = opts.rays
	}
	if opts.seed != 0 {
		config.Seed = opts.seed
	}
	if opts.sink != "" {
		config.SinkMode = renderer.SinkMode(opts.sink)
	}
	if opts.policy != "" {
		config.DistancePolicy = lights.DistancePolicy(opts.policy)
	}
	if opts.maxBounces != 0 {
		config.MaxBounces = opts.maxBounces
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// createOutputDir returns the output directory for a scene
func createOutputDir(sceneType string) string {
	return filepath.Join("output", filepath.Base(sceneType))
}

// savePNG writes the image under dir with a timestamped name
func savePNG(dir string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("error saving PNG: %w", err)
	}
	return filename, nil
}
