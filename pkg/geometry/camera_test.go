package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        45.0,
	}
}

func TestCamera_GetCameraForward(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)

	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCamera_HeightFromAspectRatio(t *testing.T) {
	tests := []struct {
		name           string
		width          int
		aspectRatio    float64
		expectedHeight int
	}{
		{name: "Square image", width: 400, aspectRatio: 1.0, expectedHeight: 400},
		{name: "Widescreen", width: 400, aspectRatio: 16.0 / 9.0, expectedHeight: 225},
		{name: "Half-height", width: 100, aspectRatio: 2.0, expectedHeight: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			config.Width = tt.width
			config.AspectRatio = tt.aspectRatio

			camera := NewCamera(config)
			if camera.Height() != tt.expectedHeight {
				t.Errorf("Expected height %d, got %d", tt.expectedHeight, camera.Height())
			}
			if camera.Width() != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, camera.Width())
			}
		})
	}
}

func TestCamera_GetRay_Deterministic(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	first := camera.GetRay(123, 217)
	second := camera.GetRay(123, 217)

	if first != second {
		t.Errorf("Same pixel produced different rays: %v vs %v", first, second)
	}
}

func TestCamera_GetRay_CenterPixel(t *testing.T) {
	// Odd width puts a pixel center exactly on the optical axis
	config := testCameraConfig()
	config.Width = 401

	camera := NewCamera(config)
	ray := camera.GetRay(200, 200)

	expected := core.NewVec3(0, 0, -1)
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected center ray direction %v, got %v", expected, ray.Direction)
	}
	if ray.Origin != config.Center {
		t.Errorf("Expected ray origin %v, got %v", config.Center, ray.Origin)
	}
}

func TestCamera_GetRay_CornerDirections(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	upperLeft := camera.GetRay(0, 0)
	lowerRight := camera.GetRay(camera.Width()-1, camera.Height()-1)

	// Looking down -Z with +Y up: upper-left rays lean left and up
	if upperLeft.Direction.X >= 0 || upperLeft.Direction.Y <= 0 {
		t.Errorf("Upper-left ray should have X<0, Y>0, got %v", upperLeft.Direction)
	}
	if lowerRight.Direction.X <= 0 || lowerRight.Direction.Y >= 0 {
		t.Errorf("Lower-right ray should have X>0, Y<0, got %v", lowerRight.Direction)
	}
}

func TestCamera_GetRayJittered_SeedDeterminism(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	first := camera.GetRayJittered(50, 60, rand.New(rand.NewSource(7)))
	second := camera.GetRayJittered(50, 60, rand.New(rand.NewSource(7)))

	if first != second {
		t.Errorf("Same seed produced different jittered rays: %v vs %v", first, second)
	}

	// Jittered rays stay near the pixel-center ray
	center := camera.GetRay(50, 60)
	if first.Direction.Subtract(center.Direction).Length() > 0.01 {
		t.Errorf("Jittered ray strayed too far from pixel center: %v vs %v", first.Direction, center.Direction)
	}
}

func TestCamera_RaysAreNormalized(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	corners := [][2]int{{0, 0}, {399, 0}, {0, 399}, {399, 399}, {200, 200}}
	for _, c := range corners {
		ray := camera.GetRay(c[0], c[1])
		if math.Abs(ray.Direction.Length()-1.0) > 1e-9 {
			t.Errorf("Ray through (%d,%d) not normalized: length %f", c[0], c[1], ray.Direction.Length())
		}
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := testCameraConfig()

	tests := []struct {
		name     string
		override CameraConfig
		check    func(t *testing.T, merged CameraConfig)
	}{
		{
			name:     "Empty override keeps base",
			override: CameraConfig{},
			check: func(t *testing.T, merged CameraConfig) {
				if merged != base {
					t.Errorf("Expected %+v, got %+v", base, merged)
				}
			},
		},
		{
			name:     "Width override only",
			override: CameraConfig{Width: 800},
			check: func(t *testing.T, merged CameraConfig) {
				if merged.Width != 800 {
					t.Errorf("Expected width 800, got %d", merged.Width)
				}
				if merged.VFov != base.VFov || merged.Center != base.Center {
					t.Errorf("Override touched unrelated fields: %+v", merged)
				}
			},
		},
		{
			name:     "Center override only",
			override: CameraConfig{Center: core.NewVec3(5, 5, 5)},
			check: func(t *testing.T, merged CameraConfig) {
				if merged.Center != core.NewVec3(5, 5, 5) {
					t.Errorf("Expected center (5,5,5), got %v", merged.Center)
				}
				if merged.Width != base.Width {
					t.Errorf("Override touched width: %d", merged.Width)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, MergeCameraConfig(base, tt.override))
		})
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *CameraConfig)
		expectErr bool
	}{
		{name: "Valid config", mutate: func(c *CameraConfig) {}, expectErr: false},
		{name: "Zero width", mutate: func(c *CameraConfig) { c.Width = 0 }, expectErr: true},
		{name: "Negative aspect ratio", mutate: func(c *CameraConfig) { c.AspectRatio = -1 }, expectErr: true},
		{name: "Zero fov", mutate: func(c *CameraConfig) { c.VFov = 0 }, expectErr: true},
		{name: "Fov at 180", mutate: func(c *CameraConfig) { c.VFov = 180 }, expectErr: true},
		{name: "Center equals look-at", mutate: func(c *CameraConfig) { c.LookAt = c.Center }, expectErr: true},
		{
			name:      "Up parallel to view",
			mutate:    func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, -1) },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("Expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
