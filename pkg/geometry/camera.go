package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking from Center toward
// LookAt. VFov is the vertical field of view in degrees; image height
// is derived from Width and AspectRatio.
type CameraConfig struct {
	Center      core.Vec3
	LookAt      core.Vec3
	Up          core.Vec3
	Width       int
	AspectRatio float64
	VFov        float64
}

// MergeCameraConfig overlays the non-zero fields of override onto base,
// so scenes can expose their default camera while callers adjust only
// what they care about.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if override.Center != (core.Vec3{}) {
		merged.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		merged.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		merged.Up = override.Up
	}
	if override.Width != 0 {
		merged.Width = override.Width
	}
	if override.AspectRatio != 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		merged.VFov = override.VFov
	}
	return merged
}

// Validate rejects configurations that cannot produce a view basis
func (c CameraConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("camera: width %d must be positive", c.Width)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("camera: aspect ratio %v must be positive", c.AspectRatio)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("camera: vertical fov %v outside (0, 180)", c.VFov)
	}
	view := c.LookAt.Subtract(c.Center)
	if view.Length() == 0 {
		return fmt.Errorf("camera: center and look-at coincide")
	}
	if c.Up.Cross(view).Length() == 0 {
		return fmt.Errorf("camera: up vector parallel to view direction")
	}
	return nil
}

// Camera generates primary rays from a precomputed view basis
type Camera struct {
	center      core.Vec3
	pixel00     core.Vec3 // center of pixel (0,0)
	pixelDeltaU core.Vec3 // step between horizontally adjacent pixels
	pixelDeltaV core.Vec3 // step between vertically adjacent pixels
	forward     core.Vec3
	width       int
	height      int
}

// NewCamera builds the orthonormal basis and viewport spans for the
// given configuration. The viewport sits at unit distance in front of
// the camera; ray directions are normalized, so the distance choice
// does not affect the image.
func NewCamera(config CameraConfig) *Camera {
	height := int(float64(config.Width) / config.AspectRatio)
	if height < 1 {
		height = 1
	}

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2.0)
	viewportWidth := viewportHeight * float64(config.Width) / float64(height)

	w := config.Center.Subtract(config.LookAt).Normalize() // backward
	u := config.Up.Cross(w).Normalize()                    // right
	v := w.Cross(u)                                        // up

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight) // image y grows downward

	pixelDeltaU := viewportU.Multiply(1.0 / float64(config.Width))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(height))

	upperLeft := config.Center.Subtract(w).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		center:      config.Center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		forward:     w.Negate(),
		width:       config.Width,
		height:      height,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the derived image height in pixels
func (c *Camera) Height() int { return c.height }

// GetRay returns the ray through the center of pixel (i, j).
// Same pixel, same ray: single-sample renders are fully deterministic.
func (c *Camera) GetRay(i, j int) core.Ray {
	pixel := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
	return core.NewRay(c.center, pixel.Subtract(c.center).Normalize())
}

// GetRayJittered returns a ray through a random point inside pixel
// (i, j), used when rendering with more than one sample per pixel.
func (c *Camera) GetRayJittered(i, j int, random *rand.Rand) core.Ray {
	offsetU := random.Float64() - 0.5
	offsetV := random.Float64() - 0.5
	pixel := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetU)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetV))
	return core.NewRay(c.center, pixel.Subtract(c.center).Normalize())
}

// GetCameraForward returns the viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}
