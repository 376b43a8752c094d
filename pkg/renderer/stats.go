package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	ElapsedTime    time.Duration // Wall-clock duration of the render
	TilesRendered  int           // Number of tiles the image was split into
	Workers        int           // Number of parallel workers used
}
