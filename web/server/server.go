package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/renderer"
	"github.com/df07/literal-raytracer/pkg/scene"
)

// DefaultScene is rendered when a request names none
const DefaultScene = "spotlights"

// Server handles web requests for the light simulation
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Built-in scene id
	Width           int     `json:"width"`           // Image width
	Height          int     `json:"height"`          // Image height
	MaxPasses       int     `json:"maxPasses"`       // Maximum number of passes
	TicksPerPass    int     `json:"ticksPerPass"`    // Simulation ticks per pass
	ActiveRayTarget int     `json:"activeRayTarget"` // Rays in flight
	MinBounces      int     `json:"minBounces"`      // Rays with fewer bounces are not drawn
	MaxBounces      int     `json:"maxBounces"`      // Bounce ceiling, negative = unbounded
	MaxRayDistance  float64 `json:"maxRayDistance"`  // Fixed ray length or attenuation cap
	DistancePolicy  string  `json:"distancePolicy"`  // "fixed" or "attenuation"
	Distribution    string  `json:"distribution"`    // Emission angular distribution
	Seed            int64   `json:"seed"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scene.ListScenes())
}

// parseCommonSceneParams parses the scene id and resolution shared by the
// render and inspect endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	if id := query.Get("scene"); id != "" {
		req.Scene = id
	} else {
		req.Scene = DefaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 300, 16, 2000); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates a built-in scene by id
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	return scene.Load(req.Scene, scene.Options{}, nil)
}

// simulationConfig builds the validated simulation config of a request
func (s *Server) simulationConfig(req *RenderRequest) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.ActiveRayTarget = req.ActiveRayTarget
	config.MinBounces = req.MinBounces
	config.MaxBounces = req.MaxBounces
	config.MaxRayDistance = req.MaxRayDistance
	config.DistancePolicy = lights.DistancePolicy(req.DistancePolicy)
	config.Distribution = core.Distribution(req.Distribution)
	config.Seed = req.Seed
	config.SinkMode = renderer.SinkAccumulate

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req := &RenderRequest{Scene: r.URL.Query().Get("scene")}
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	defaults := renderer.DefaultConfig()
	progressive := renderer.DefaultProgressiveConfig()
	response := map[string]interface{}{
		"scene": req.Scene,
		"defaults": map[string]interface{}{
			"width":           sceneObj.CameraConfig.Width,
			"height":          sceneObj.CameraConfig.Height,
			"maxPasses":       progressive.MaxPasses,
			"ticksPerPass":    progressive.TicksPerPass,
			"activeRayTarget": defaults.ActiveRayTarget,
			"minBounces":      defaults.MinBounces,
			"maxBounces":      defaults.MaxBounces,
			"maxRayDistance":  defaults.MaxRayDistance,
			"distancePolicy":  defaults.DistancePolicy,
			"distribution":    defaults.Distribution,
			"seed":            defaults.Seed,
			"emitters":        len(sceneObj.Emitters),
			"shapes":          sceneObj.ShapeCount(),
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": 16, "max": 2000},
			"height":          map[string]int{"min": 16, "max": 2000},
			"maxPasses":       map[string]int{"min": 1, "max": 10000},
			"ticksPerPass":    map[string]int{"min": 1, "max": 100000},
			"activeRayTarget": map[string]int{"min": 1, "max": 100000},
			"minBounces":      map[string]int{"min": 0, "max": 100},
			"maxBounces":      map[string]int{"min": -1, "max": 1000},
			"maxRayDistance":  map[string]float64{"min": 0.001, "max": 1e6},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
