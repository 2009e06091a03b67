package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/renderer"
	"github.com/df07/literal-raytracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// PassUpdate is the payload of a passComplete event
type PassUpdate struct {
	Event          string  `json:"event"`
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	ElapsedMs      int64   `json:"elapsedMs"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG
	TotalPixels    int     `json:"totalPixels"`
	CoveredPixels  int     `json:"coveredPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	RaysTraced     int     `json:"raysTraced"`
	SegmentsDrawn  int     `json:"segmentsDrawn"`
	RaysCulled     int     `json:"raysCulled"`
	QueueLength    int     `json:"queueLength"`
	ShapeCount     int     `json:"shapeCount"`
	EmitterCount   int     `json:"emitterCount"`
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.ProgressiveRaytracer
}

// handleRender handles progressive rendering with pass streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)

	// Start single SSE writer goroutine; the handler waits for it to drain
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleCtx, stopConsole := context.WithCancel(ctx)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()
	defer func() {
		stopConsole()
		<-consoleDone
	}()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	// Start rendering and stream events
	startTime := time.Now()
	passChan, errChan := pipeline.Raytracer.RenderProgressive(ctx)

	s.handleRenderingEvents(ctx, sseEventChan, passChan, errChan, pipeline.Scene, req, startTime)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				// Channel closed
				return
			}

			// Write SSE event
			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until ctx is done
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	config, err := s.simulationConfig(req)
	if err != nil {
		return nil, err
	}

	progressive := renderer.ProgressiveConfig{
		TicksPerPass: req.TicksPerPass,
		MaxPasses:    req.MaxPasses,
	}

	raytracer, err := renderer.NewProgressiveRaytracer(config, sceneObj.Host(config.Width, config.Height), progressive, logger)
	if err != nil {
		return nil, err
	}
	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: raytracer,
	}, nil
}

// handleRenderingEvents streams every pass, then the final status. The
// pass channel closes after the error channel has its value, so passes
// are drained first.
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan SSEEvent,
	passChan <-chan renderer.PassResult, errChan <-chan error,
	scene *scene.Scene, req *RenderRequest, startTime time.Time) {

	for passResult := range passChan {
		s.handlePassComplete(ctx, sseEventChan, passResult, req, scene, startTime)
	}

	if err := <-errChan; err != nil {
		if ctx.Err() != nil {
			// Client disconnected
			return
		}
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	// Send completion event
	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// handlePassComplete processes and sends pass completion events
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan SSEEvent, passResult renderer.PassResult, req *RenderRequest, scene *scene.Scene, startTime time.Time) {
	// Check if client is still connected
	select {
	case <-ctx.Done():
		return
	default:
	}

	imageData, err := s.imageToBase64PNG(passResult.Image)
	if err != nil {
		log.Printf("Error encoding pass %d image: %v", passResult.PassNumber, err)
		return
	}

	update := PassUpdate{
		Event:          "passComplete",
		PassNumber:     passResult.PassNumber,
		TotalPasses:    req.MaxPasses,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		ImageData:      imageData,
		TotalPixels:    passResult.Stats.TotalPixels,
		CoveredPixels:  passResult.Stats.CoveredPixels,
		TotalSamples:   passResult.Stats.TotalSamples,
		AverageSamples: passResult.Stats.AverageSamples,
		MaxSamplesUsed: passResult.Stats.MaxSamplesUsed,
		RaysTraced:     passResult.Ticks.Traced,
		SegmentsDrawn:  passResult.Ticks.Drawn,
		RaysCulled:     passResult.Ticks.Culled,
		QueueLength:    passResult.Ticks.QueueLen,
		ShapeCount:     scene.ShapeCount(),
		EmitterCount:   len(scene.Emitters),
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "passComplete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	// Parse common scene parameters using shared function
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	defaults := renderer.DefaultConfig()
	progressive := renderer.DefaultProgressiveConfig()
	query := r.URL.Query()

	var err error
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", progressive.MaxPasses, 1, 10000); err != nil {
		return nil, err
	}
	if req.TicksPerPass, err = parseIntParam(query, "ticksPerPass", progressive.TicksPerPass, 1, 100000); err != nil {
		return nil, err
	}
	if req.ActiveRayTarget, err = parseIntParam(query, "activeRayTarget", defaults.ActiveRayTarget, 1, 100000); err != nil {
		return nil, err
	}
	if req.MinBounces, err = parseIntParam(query, "minBounces", defaults.MinBounces, 0, 100); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", defaults.MaxBounces, -1, 1000); err != nil {
		return nil, err
	}
	if req.MaxRayDistance, err = parseFloatParam(query, "maxRayDistance", defaults.MaxRayDistance, 0.001, 1e6); err != nil {
		return nil, err
	}

	req.DistancePolicy = string(defaults.DistancePolicy)
	if v := query.Get("distancePolicy"); v != "" {
		req.DistancePolicy = v
	}
	req.Distribution = string(defaults.Distribution)
	if v := query.Get("distribution"); v != "" {
		req.Distribution = v
	}

	req.Seed = defaults.Seed
	if v := query.Get("seed"); v != "" {
		var seed int64
		if _, err := fmt.Sscan(v, &seed); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", v)
		}
		req.Seed = seed
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.ActiveRayTarget > 10000 {
		log.Printf("Render warning: Large image with many active rays may render slowly")
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
