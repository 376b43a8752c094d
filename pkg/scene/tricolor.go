package scene

import (
	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/lights"
	"github.com/NickEvans/go-raytracer/pkg/material"
)

// NewTriColorScene creates a row of red, green and blue matte spheres
// on a white ground plane under a single white light. With no specular
// or reflective materials the image is pure diffuse shading, which
// makes it the easiest scene to reason about pixel by pixel.
func NewTriColorScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 5),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       500,
		AspectRatio: 1.0,
		VFov:        35.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	white := material.Matte(core.NewVec3(0.9, 0.9, 0.9))
	red := material.Matte(core.NewVec3(0.85, 0.12, 0.1))
	green := material.Matte(core.NewVec3(0.1, 0.75, 0.15))
	blue := material.Matte(core.NewVec3(0.1, 0.2, 0.85))

	return &Scene{
		Primitives: []geometry.Primitive{
			geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), white),
			geometry.NewSphere(core.NewVec3(-1.5, 0.5, 0), 0.5, red),
			geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, green),
			geometry.NewSphere(core.NewVec3(1.5, 0.5, 0), 0.5, blue),
		},
		Lights: []lights.PointLight{
			lights.NewPointLight(core.NewVec3(0, 6, 4), core.NewVec3(0.95, 0.95, 0.95)),
		},
		Ambient:      core.NewVec3(0.1, 0.1, 0.1),
		Background:   core.NewVec3(0.85, 0.85, 0.85),
		CameraConfig: cameraConfig,
	}
}
