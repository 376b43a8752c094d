package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/loaders"
	"github.com/NickEvans/go-raytracer/pkg/scene"
)

func TestResolveScene(t *testing.T) {
	// A JSON scene file to resolve by path
	scenePath := filepath.Join(t.TempDir(), "custom.json")
	if err := loaders.Save(scenePath, scene.NewTriColorScene()); err != nil {
		t.Fatalf("Expected scene save to succeed, got %v", err)
	}

	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"mirrors scene", "mirrors", false},
		{"tricolor scene", "tricolor", false},

		// JSON scene by path
		{"json scene path", scenePath, false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing json path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := resolveScene(tt.sceneName, geometry.CameraConfig{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, but got none", tt.sceneName)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneName, err)
			}
			if s == nil {
				t.Fatalf("Expected scene for %q, got nil", tt.sceneName)
			}
			if s.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", s.CameraConfig.Width)
			}
		})
	}
}

func TestResolveScene_UnknownNameListsBuiltIns(t *testing.T) {
	_, err := resolveScene("nonexistent", geometry.CameraConfig{})
	if err == nil {
		t.Fatal("Expected error for unknown scene, got none")
	}
	for _, name := range []string{"default", "mirrors", "tricolor"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Expected error to list built-in %q, got %q", name, err.Error())
		}
	}
}

func TestResolveScene_WidthOverride(t *testing.T) {
	s, err := resolveScene("default", geometry.CameraConfig{Width: 128})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.CameraConfig.Width != 128 {
		t.Errorf("Expected width override 128, got %d", s.CameraConfig.Width)
	}

	// Overrides apply to file scenes too
	scenePath := filepath.Join(t.TempDir(), "custom.json")
	if err := loaders.Save(scenePath, scene.NewTriColorScene()); err != nil {
		t.Fatalf("Expected scene save to succeed, got %v", err)
	}
	s, err = resolveScene(scenePath, geometry.CameraConfig{Width: 64})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.CameraConfig.Width != 64 {
		t.Errorf("Expected width override 64, got %d", s.CameraConfig.Width)
	}
}

func TestResolveScene_InvalidOverrideRejected(t *testing.T) {
	if _, err := resolveScene("default", geometry.CameraConfig{Width: -10}); err == nil {
		t.Error("Expected negative width to fail validation, got nil")
	}
}

func TestResolveScene_BrokenJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}

	_, err := resolveScene(path, geometry.CameraConfig{})
	if err == nil {
		t.Fatal("Expected error for broken scene file, got none")
	}
	// A file that exists but fails to parse reports the parse error,
	// not the unknown-scene hint
	if strings.Contains(err.Error(), "unknown scene") {
		t.Errorf("Expected decode error, got %q", err.Error())
	}
}

func TestPickFormat(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		outPath     string
		expected    string
		expectError bool
	}{
		{"explicit ppm", "ppm", "render.png", "ppm", false},
		{"explicit png", "png", "render.ppm", "png", false},
		{"inferred png", "", "out/render.png", "png", false},
		{"inferred ppm", "", "render.ppm", "ppm", false},
		{"uppercase extension", "", "RENDER.PNG", "png", false},
		{"no extension defaults to ppm", "", "render", "ppm", false},
		{"unknown format flag", "jpeg", "render.ppm", "", true},
		{"unknown extension", "", "render.jpg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickFormat(tt.format, tt.outPath)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error, got format %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected format %q, got %q", tt.expected, got)
			}
		})
	}
}
