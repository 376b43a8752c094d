package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/renderer"
	"github.com/NickEvans/go-raytracer/pkg/scene"
)

// DefaultTileSize is the tile edge length used for web renders.
const DefaultTileSize = 64

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a validated render request from the client
type RenderRequest struct {
	Scene   string  `json:"scene"`   // Built-in scene name (e.g., "mirrors")
	Width   int     `json:"width"`   // Image width; height follows the scene's aspect ratio
	Depth   int     `json:"depth"`   // Maximum recursion depth
	Samples int     `json:"samples"` // Samples per pixel
	Gamma   float64 `json:"gamma"`   // Gamma applied at encode time
}

// Start starts the web server
func (s *Server) Start() error {
	// Serve static files
	http.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/inspect", s.handleInspect)
	http.HandleFunc("/api/health", s.handleHealth)
	http.HandleFunc("/api/scenes", s.handleScenes)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes for the client's scene picker
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scene.Catalog())
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	// Parse scene name (validated against the catalog when building)
	if name := r.URL.Query().Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "default"
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", 400, 100, 2000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(r.URL.Query(), "depth", 5, 1, 32); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(r.URL.Query(), "samples", 1, 1, 64); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(r.URL.Query(), "gamma", 1.0, 0.1, 4.0); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width >= 1000 && req.Samples > 16 {
		log.Printf("Render warning: large image with many samples may render slowly")
	}

	return req, nil
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

// buildScene constructs the requested built-in scene sized for the request
func (s *Server) buildScene(req *RenderRequest) (*scene.Scene, bool) {
	return scene.BuiltIn(req.Scene, geometry.CameraConfig{Width: req.Width})
}

// renderOptions maps request parameters onto renderer options
func renderOptions(req *RenderRequest) renderer.Options {
	opts := renderer.DefaultOptions()
	opts.MaxDepth = req.Depth
	opts.SamplesPerPixel = req.Samples
	opts.Gamma = req.Gamma
	opts.TileSize = DefaultTileSize
	return opts
}

// writeJSONError replies with a JSON error body and the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
