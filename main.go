package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/loaders"
	"github.com/NickEvans/go-raytracer/pkg/output"
	"github.com/NickEvans/go-raytracer/pkg/renderer"
	"github.com/NickEvans/go-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneName := flag.String("scene", "default", "Built-in scene name or path to a JSON scene file")
	outPath := flag.String("out", "render.ppm", "Output image path")
	format := flag.String("format", "", "Output format: 'ppm' or 'png' (default: inferred from -out)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	depth := flag.Int("depth", 5, "Maximum ray bounce depth")
	samples := flag.Int("samples", 1, "Samples per pixel (1 = deterministic pixel centers)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	gamma := flag.Float64("gamma", 1.0, "Gamma applied to the output image")
	saveScene := flag.String("save-scene", "", "Write the selected scene as JSON to this path and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Built-in scenes:")
		for _, info := range scene.Catalog() {
			fmt.Printf("  %-9s %s\n", info.Name, info.Description)
		}
		fmt.Println()
		fmt.Println("Any other -scene value is treated as a JSON scene file path.")
		return
	}

	var cameraOverrides geometry.CameraConfig
	if *width > 0 {
		cameraOverrides.Width = *width
	}

	selectedScene, err := resolveScene(*sceneName, cameraOverrides)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	if *saveScene != "" {
		if err := loaders.Save(*saveScene, selectedScene); err != nil {
			fmt.Printf("Error saving scene: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scene saved as %s\n", *saveScene)
		return
	}

	outFormat, err := pickFormat(*format, *outPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	options := renderer.DefaultOptions()
	options.MaxDepth = *depth
	options.SamplesPerPixel = *samples
	options.Workers = *workers
	options.Gamma = *gamma

	// Ctrl-C cancels the render instead of killing it mid-write
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(selectedScene, options, nil)
	fb, stats, err := raytracer.Render(ctx)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Create(*outPath)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	switch outFormat {
	case "png":
		err = output.WritePNG(file, fb, *gamma)
	default:
		err = output.WritePPM(file, fb, *gamma)
	}
	if err != nil {
		fmt.Printf("Error writing image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s (%dx%d, %v, %d workers)\n",
		*outPath, fb.Width, fb.Height, stats.ElapsedTime.Round(10*time.Millisecond), stats.Workers)
}

// resolveScene returns the named built-in scene, or loads the argument
// as a JSON scene file when no built-in matches. Camera overrides are
// applied either way, and the result is validated before rendering.
func resolveScene(name string, cameraOverrides geometry.CameraConfig) (*scene.Scene, error) {
	if s, ok := scene.BuiltIn(name, cameraOverrides); ok {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := loaders.Load(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			names := make([]string, 0)
			for _, info := range scene.Catalog() {
				names = append(names, info.Name)
			}
			return nil, fmt.Errorf("unknown scene %q (built-in scenes: %s)", name, strings.Join(names, ", "))
		}
		return nil, err
	}

	s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, cameraOverrides)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// pickFormat resolves the output format from the -format flag, falling
// back to the output file extension
func pickFormat(format, outPath string) (string, error) {
	switch format {
	case "ppm", "png":
		return format, nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q (supported: ppm, png)", format)
	}

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".png":
		return "png", nil
	case ".ppm", "":
		return "ppm", nil
	default:
		return "", fmt.Errorf("cannot infer format from %q, use -format", outPath)
	}
}
