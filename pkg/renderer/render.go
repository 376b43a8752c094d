package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	// Create deterministic random generator based on tile ID
	random := rand.New(rand.NewSource(int64(id + 42))) // +42 to avoid seed 0

	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: random,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			// Calculate tile bounds
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			bounds := image.Rect(x0, y0, x1, y1)
			tiles = append(tiles, NewTile(tileID, bounds))
			tileID++
		}
	}

	return tiles
}

// Progress describes how far a render has come. Tiles complete in
// scheduling order, not image order, so TilesDone is a work counter
// rather than a scanline position.
type Progress struct {
	TilesDone  int
	TotalTiles int
	Elapsed    time.Duration
}

// Render renders the full image and returns the framebuffer along with
// statistics about the run. Cancel the context to stop early.
func (rt *Raytracer) Render(ctx context.Context) (*core.Framebuffer, RenderStats, error) {
	return rt.RenderWithProgress(ctx, nil)
}

// RenderWithProgress renders the full image, invoking onProgress from
// the collecting goroutine after each completed tile. The callback must
// not block for long; it runs on the critical path between tiles.
func (rt *Raytracer) RenderWithProgress(ctx context.Context, onProgress func(Progress)) (*core.Framebuffer, RenderStats, error) {
	start := time.Now()

	width, height := rt.camera.Width(), rt.camera.Height()
	fb := core.NewFramebuffer(width, height)
	tiles := NewTileGrid(width, height, rt.options.TileSize)

	pool := NewWorkerPool(rt, len(tiles), rt.options.Workers)
	pool.Start(ctx)
	defer pool.Stop()

	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile})
	}

	rt.logger.Printf("Rendering %dx%d: %d tiles of %dx%d on %d workers...\n",
		width, height, len(tiles), rt.options.TileSize, rt.options.TileSize, pool.GetNumWorkers())

	// Collect tiles as they finish; bounds never overlap, so each
	// result writes its own region of the framebuffer
	lastMilestone := 0
	for done := 0; done < len(tiles); done++ {
		select {
		case <-ctx.Done():
			rt.logger.Printf("Render cancelled after %d/%d tiles\n", done, len(tiles))
			return nil, RenderStats{}, ctx.Err()
		case result, ok := <-pool.Results():
			if !ok {
				return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
			}
			fb.SetRegion(result.Bounds, result.Pix)

			if onProgress != nil {
				onProgress(Progress{
					TilesDone:  done + 1,
					TotalTiles: len(tiles),
					Elapsed:    time.Since(start),
				})
			}

			if percent := (done + 1) * 100 / len(tiles); percent >= lastMilestone+25 {
				lastMilestone = percent - percent%25
				rt.logger.Printf("Rendered %d/%d tiles (%d%%)\n", done+1, len(tiles), percent)
			}
		}
	}

	stats := RenderStats{
		TotalPixels:    width * height,
		TotalSamples:   width * height * rt.options.SamplesPerPixel,
		AverageSamples: float64(rt.options.SamplesPerPixel),
		ElapsedTime:    time.Since(start),
		TilesRendered:  len(tiles),
		Workers:        pool.GetNumWorkers(),
	}

	rt.logger.Printf("Render completed in %v (%d samples/pixel)\n",
		stats.ElapsedTime, rt.options.SamplesPerPixel)

	return fb, stats, nil
}
