package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// TileUpdate reports a finished tile via SSE
type TileUpdate struct {
	TileX       int `json:"tileX"`
	TileY       int `json:"tileY"`
	X           int `json:"x"` // Pixel bounds, row 0 at the top
	Y           int `json:"y"`
	Width       int `json:"width"`
	Height      int `json:"height"`
	PassNumber  int `json:"passNumber"`
	TileNumber  int `json:"tileNumber"`  // Current tile number in this pass (1-based)
	TotalTiles  int `json:"totalTiles"`  // Total number of tiles in the image
	TotalPasses int `json:"totalPasses"` // Total number of passes planned
}

// PassUpdate carries a finished pass and its preview image via SSE
type PassUpdate struct {
	PassNumber      int     `json:"passNumber"`
	TotalPasses     int     `json:"totalPasses"`
	ImageData       string  `json:"imageData"` // Base64 encoded PNG preview
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	ElapsedMs       int64   `json:"elapsedMs"`
	PassMs          int64   `json:"passMs"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	TotalSamples    int     `json:"totalSamples"`
	AverageSamples  float64 `json:"averageSamples"`
	RayCount        int64   `json:"rayCount"`
	PrimitiveCount  int     `json:"primitiveCount"`
	IsComplete      bool    `json:"isComplete"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Config    renderer.FrameConfig
	Raytracer *renderer.ProgressiveRaytracer
}

// handleRender handles progressive rendering with pass and tile streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleStop := make(chan struct{})
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, consoleStop, sseEventChan)
	}()

	final := s.runRender(ctx, r, sseEventChan, webLogger)

	// Console output goes out before the closing event
	close(consoleStop)
	<-consoleDone
	if final != nil {
		select {
		case sseEventChan <- *final:
		case <-ctx.Done():
		}
	}
	close(sseEventChan)
	<-writerDone
}

// runRender parses the request and renders, queueing pass and tile events.
// It returns the closing "complete" or "error" event, or nil if the client left.
func (s *Server) runRender(ctx context.Context, r *http.Request, sseEventChan chan SSEEvent, logger core.Logger) *SSEEvent {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		return errorEvent(fmt.Sprintf("Invalid request: %v", err))
	}

	pipeline, err := s.setupRenderingPipeline(req, logger)
	if err != nil {
		return errorEvent(err.Error())
	}

	startTime := time.Now()
	renderOptions := renderer.RenderOptions{TileUpdates: true}
	passChan, tileChan, errChan := pipeline.Raytracer.RenderProgressive(ctx, renderOptions)

	return s.handleRenderingEvents(ctx, sseEventChan, passChan, tileChan, errChan, pipeline, req, startTime)
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

// writeSSEEvents writes queued events until the channel closes or the client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until stop is closed, then
// flushes whatever is still buffered
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, stop <-chan struct{}, sseEventChan chan SSEEvent) {
	forward := func(msg ConsoleMessage) {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			return
		}
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}

	for {
		select {
		case msg := <-consoleChan:
			forward(msg)
		case <-stop:
			for {
				select {
				case msg := <-consoleChan:
					forward(msg)
				default:
					return
				}
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
	logger.Printf("Loaded scene %s with %d spheres\n", sceneObj.Name, sceneObj.GetPrimitiveCount())

	config := s.frameConfig(req, sceneObj)
	raytracer, err := renderer.NewProgressiveRaytracer(sceneObj, config, logger)
	if err != nil {
		return nil, err
	}

	return &RenderingPipeline{
		Scene:     sceneObj,
		Config:    config,
		Raytracer: raytracer,
	}, nil
}

// handleRenderingEvents processes the main rendering event loop
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan SSEEvent,
	passChan <-chan renderer.PassResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	pipeline *RenderingPipeline, req *RenderRequest, startTime time.Time) *SSEEvent {

	for passChan != nil || tileChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handlePassComplete(ctx, sseEventChan, passResult, pipeline, req, startTime)

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			s.handleTileUpdate(ctx, sseEventChan, tileResult)

		case <-ctx.Done():
			// Client disconnected
			return nil
		}
	}

	// errChan is closed by the time the other channels are; a nil read means success
	if err := <-errChan; err != nil {
		return errorEvent(fmt.Sprintf("Rendering failed: %v", err))
	}
	return &SSEEvent{Type: "complete", Data: "Rendering completed"}
}

// handlePassComplete encodes the pass preview and queues it
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan SSEEvent, passResult renderer.PassResult, pipeline *RenderingPipeline, req *RenderRequest, startTime time.Time) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	preview := output.Thumbnail(output.ToRGBA(passResult.Image), uint(req.ThumbWidth))
	imageData, err := output.PNGBase64(preview)
	if err != nil {
		log.Printf("Error encoding pass %d: %v", passResult.PassNumber, err)
		return
	}

	update := PassUpdate{
		PassNumber:      passResult.PassNumber,
		TotalPasses:     pipeline.Config.Passes,
		ImageData:       imageData,
		Width:           passResult.Image.Width,
		Height:          passResult.Image.Height,
		ElapsedMs:       time.Since(startTime).Milliseconds(),
		PassMs:          passResult.Elapsed.Milliseconds(),
		SamplesPerPixel: passResult.Stats.SamplesPerPixel,
		TotalSamples:    passResult.Stats.TotalSamples,
		AverageSamples:  passResult.Stats.AverageSamples,
		RayCount:        passResult.Stats.RayCount,
		PrimitiveCount:  pipeline.Scene.GetPrimitiveCount(),
		IsComplete:      passResult.IsLast,
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

// handleTileUpdate queues a tile completion event
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tileResult renderer.TileCompletionResult) {
	update := TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		X:           tileResult.Bounds.Min.X,
		Y:           tileResult.Bounds.Min.Y,
		Width:       tileResult.Bounds.Dx(),
		Height:      tileResult.Bounds.Dy(),
		PassNumber:  tileResult.PassNumber,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalPasses: tileResult.TotalPasses,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

func errorEvent(message string) *SSEEvent {
	return &SSEEvent{Type: "error", Data: message}
}
