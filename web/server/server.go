package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

const (
	// DefaultTileSize is the tile edge used for web renders
	DefaultTileSize = 32
	// DefaultScene is rendered when a request names none
	DefaultScene = "three-spheres"
	// DefaultThumbWidth caps the width of streamed pass previews
	DefaultThumbWidth = 800
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
	uploader  *output.S3Uploader // nil when S3 is not configured
}

// NewServer creates a new web server. uploader may be nil.
func NewServer(port int, scenesDir string, uploader *output.S3Uploader) *Server {
	return &Server{port: port, scenesDir: scenesDir, uploader: uploader}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene reference, e.g. "random" or "json:glass-row"
	Width      int    `json:"width"`      // Image width, 0 = scene default
	MaxSamples int    `json:"maxSamples"` // Samples per pixel, 0 = scene default
	MaxPasses  int    `json:"maxPasses"`  // Progressive passes
	MaxDepth   int    `json:"maxDepth"`   // Bounce limit, -1 = scene default
	Seed       int64  `json:"seed"`       // Seed for random scenes and samplers
	ThumbWidth int    `json:"thumbWidth"` // Preview width for streamed passes
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render-file", s.handleRenderFile)
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
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes grouped for the scene picker
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.FrameConfigForScene(sceneObj)
	response := map[string]interface{}{
		"scene": req.Scene,
		"name":  sceneObj.Name,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height(),
			"aspectRatio":     config.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"passes":          config.Passes,
		},
		"camera":     sceneObj.CameraConfig,
		"background": sceneObj.Background,
		"primitives": sceneObj.GetPrimitiveCount(),
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": 1, "max": 2000},
			"maxSamples": map[string]int{"min": 1, "max": 10000},
			"maxPasses":  map[string]int{"min": 1, "max": 100},
			"maxDepth":   map[string]int{"min": 0, "max": 200},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the parameters shared by every scene endpoint
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = DefaultScene
	}
	if err := validateSceneRef(req.Scene); err != nil {
		return err
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, 2000); err != nil {
		return err
	}
	seed, err := parseIntParam(query, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return err
	}
	req.Seed = int64(seed)
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 0, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 7, 1, 100); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", -1, 0, 200); err != nil {
		return nil, err
	}
	if req.ThumbWidth, err = parseIntParam(query, "thumbWidth", DefaultThumbWidth, 0, 2000); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width > 1000 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// validateSceneRef only admits built-in ids and json:<name> references, so
// requests cannot read arbitrary files
func validateSceneRef(ref string) error {
	if strings.HasPrefix(ref, "json:") {
		name := strings.TrimPrefix(ref, "json:")
		if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
			return fmt.Errorf("invalid scene name: %s", ref)
		}
		return nil
	}
	if strings.HasSuffix(ref, ".json") {
		return fmt.Errorf("scene files must be referenced as json:<name>, got %s", ref)
	}
	return nil
}

// createScene loads the scene named in the request
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if strings.HasPrefix(req.Scene, "json:") && s.scenesDir != "" {
		path := filepath.Join(s.scenesDir, strings.TrimPrefix(req.Scene, "json:")+".json")
		return scene.LoadJSONScene(path)
	}
	return scene.Load(req.Scene, req.Seed)
}

// frameConfig applies request overrides on top of the scene defaults
func (s *Server) frameConfig(req *RenderRequest, sceneObj *scene.Scene) renderer.FrameConfig {
	config := renderer.FrameConfigForScene(sceneObj)
	config.TileSize = DefaultTileSize
	config.Seed = uint64(req.Seed)
	if req.Width > 0 {
		config.Width = req.Width
	}
	if req.MaxSamples > 0 {
		config.SamplesPerPixel = req.MaxSamples
	}
	if req.MaxDepth >= 0 {
		config.MaxDepth = req.MaxDepth
	}
	config.Passes = req.MaxPasses
	if config.Passes < 1 {
		config.Passes = 1
	}
	if config.Passes > config.SamplesPerPixel {
		config.Passes = config.SamplesPerPixel
	}
	return config
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
