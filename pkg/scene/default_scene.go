package scene

import (
	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/lights"
	"github.com/NickEvans/go-raytracer/pkg/material"
)

// NewDefaultScene creates the standard demo scene: a glossy red sphere,
// a matte blue sphere and a mirror sphere resting on a gray ground
// plane, lit by a bright key light and a dim warm fill light.
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.2, 4.5), // Slightly above the spheres
		LookAt:      core.NewVec3(0, 0.7, 0),   // Look at the group center
		Up:          core.NewVec3(0, 1, 0),     // Standard up direction
		Width:       500,
		AspectRatio: 1.0,
		VFov:        40.0,
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Create materials
	ground := material.Matte(core.NewVec3(0.55, 0.55, 0.55))
	glossyRed := material.Glossy(core.NewVec3(0.8, 0.15, 0.1), 64)
	matteBlue := material.Matte(core.NewVec3(0.15, 0.25, 0.7))
	mirror := material.Mirror(0.85)

	return &Scene{
		Primitives: []geometry.Primitive{
			geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
			geometry.NewSphere(core.NewVec3(-1.1, 0.6, 0.2), 0.6, glossyRed),
			geometry.NewSphere(core.NewVec3(1.15, 0.5, 0.6), 0.5, matteBlue),
			geometry.NewSphere(core.NewVec3(0.1, 0.8, -1.4), 0.8, mirror),
		},
		Lights: []lights.PointLight{
			lights.NewPointLight(core.NewVec3(-3, 4, 3), core.NewVec3(0.9, 0.9, 0.9)),
			lights.NewPointLight(core.NewVec3(4, 5, 1), core.NewVec3(0.35, 0.3, 0.25)),
		},
		Ambient:      core.NewVec3(0.08, 0.08, 0.08),
		Background:   core.NewVec3(0.2, 0.7, 0.8),
		CameraConfig: cameraConfig,
	}
}
