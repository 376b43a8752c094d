package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/output"
	"github.com/NickEvans/go-raytracer/pkg/renderer"
	"github.com/NickEvans/go-raytracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate is sent after each completed tile
type ProgressUpdate struct {
	RenderID   string `json:"renderId"`
	TilesDone  int    `json:"tilesDone"`
	TotalTiles int    `json:"totalTiles"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// RenderComplete carries the finished image and its statistics
type RenderComplete struct {
	RenderID  string `json:"renderId"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	TilesRendered  int     `json:"tilesRendered"`
	Workers        int     `json:"workers"`
}

// handleRender renders the requested scene. The default response is an
// SSE stream of console, progress, and complete events; clients that
// send "Accept: image/png" get the finished image directly instead.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, ok := s.buildScene(req)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scene: %s", req.Scene))
		return
	}

	if r.Header.Get("Accept") == "image/png" {
		s.renderPNG(w, r, req, sceneObj)
		return
	}
	s.renderSSE(w, r, req, sceneObj)
}

// renderPNG renders synchronously and replies with the encoded image
func (s *Server) renderPNG(w http.ResponseWriter, r *http.Request, req *RenderRequest, sceneObj *scene.Scene) {
	rt := renderer.NewRaytracer(sceneObj, renderOptions(req), nil)
	fb, _, err := rt.Render(r.Context())
	if err != nil {
		// Client disconnected mid-render; nothing left to write
		return
	}

	var buf bytes.Buffer
	if err := output.WritePNG(&buf, fb, req.Gamma); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// renderSSE streams render progress over Server-Sent Events and finishes
// with a complete event carrying the image as base64 PNG
func (s *Server) renderSSE(w http.ResponseWriter, r *http.Request, req *RenderRequest, sceneObj *scene.Scene) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine; everything else sends onto this channel
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	// Console messages from the renderer are forwarded as SSE events
	renderID := uuid.New().String()
	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	webLogger := NewWebLogger(renderID, consoleChan)
	webLogger.Printf("Render %s: scene=%s width=%d depth=%d samples=%d\n",
		renderID, req.Scene, req.Width, req.Depth, req.Samples)

	rt := renderer.NewRaytracer(sceneObj, renderOptions(req), webLogger)
	fb, stats, renderErr := rt.RenderWithProgress(ctx, func(p renderer.Progress) {
		s.sendProgress(ctx, sseEventChan, renderID, p)
	})

	// The renderer has returned, so nothing writes to the console
	// channel anymore; drain it before the final event
	close(consoleChan)
	<-consoleDone

	switch {
	case renderErr != nil:
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Render canceled: %v", renderErr))
	default:
		if data, err := s.completePayload(renderID, fb, stats, req.Gamma); err != nil {
			s.handleError(ctx, sseEventChan, "Failed to encode image: "+err.Error())
		} else {
			s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: data})
		}
	}

	// Let the writer drain everything before the handler returns
	close(sseEventChan)
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
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

			// Check if client is still connected before writing
			select {
			case <-ctx.Done():
				return
			default:
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

// streamConsoleMessages forwards renderer console messages to the SSE channel
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				// Channel closed
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			// Send to unified SSE channel, dropping if it is backed up
			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// sendProgress queues a progress event, dropping it if the stream is backed up
func (s *Server) sendProgress(ctx context.Context, sseEventChan chan SSEEvent, renderID string, p renderer.Progress) {
	update := ProgressUpdate{
		RenderID:   renderID,
		TilesDone:  p.TilesDone,
		TotalTiles: p.TotalTiles,
		ElapsedMs:  p.Elapsed.Milliseconds(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling progress update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "progress", Data: string(data)}:
	case <-ctx.Done():
	default:
	}
}

// completePayload encodes the finished framebuffer into the complete event body
func (s *Server) completePayload(renderID string, fb *core.Framebuffer, stats renderer.RenderStats, gamma float64) (string, error) {
	imageData, err := s.framebufferToBase64PNG(fb, gamma)
	if err != nil {
		return "", err
	}

	update := RenderComplete{
		RenderID:  renderID,
		ImageData: imageData,
		Width:     fb.Width,
		Height:    fb.Height,
		Stats: Stats{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   stats.TotalSamples,
			AverageSamples: stats.AverageSamples,
			TilesRendered:  stats.TilesRendered,
			Workers:        stats.Workers,
		},
		ElapsedMs: stats.ElapsedTime.Milliseconds(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// framebufferToBase64PNG converts a framebuffer to a base64-encoded PNG
func (s *Server) framebufferToBase64PNG(fb *core.Framebuffer, gamma float64) (string, error) {
	var buf bytes.Buffer
	if err := output.WritePNG(&buf, fb, gamma); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendEvent queues an event, blocking until the writer accepts it
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}
