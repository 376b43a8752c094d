package scene

import (
	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/lights"
	"github.com/NickEvans/go-raytracer/pkg/material"
)

// NewMirrorsScene creates a corridor of two facing mirror walls with a
// pair of spheres between them. Each wall reflects the other, so the
// image shows the spheres repeated until the ray depth limit cuts the
// recursion off.
func NewMirrorsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	// Default camera configuration: inside the corridor, looking down it
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.4, 5.5),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       500,
		AspectRatio: 1.0,
		VFov:        45.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	ground := material.Matte(core.NewVec3(0.6, 0.6, 0.6))
	wall := material.Mirror(0.9)
	glossyGreen := material.Glossy(core.NewVec3(0.2, 0.65, 0.25), 96)
	matteOrange := material.Matte(core.NewVec3(0.85, 0.5, 0.15))

	return &Scene{
		Primitives: []geometry.Primitive{
			geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
			// Mirror walls at x = ±2.2, normals facing inward
			geometry.NewPlane(core.NewVec3(-2.2, 0, 0), core.NewVec3(1, 0, 0), wall),
			geometry.NewPlane(core.NewVec3(2.2, 0, 0), core.NewVec3(-1, 0, 0), wall),
			geometry.NewSphere(core.NewVec3(0, 0.65, 0), 0.65, glossyGreen),
			geometry.NewSphere(core.NewVec3(-0.9, 0.35, 1.1), 0.35, matteOrange),
		},
		Lights: []lights.PointLight{
			lights.NewPointLight(core.NewVec3(0, 5, 2), core.NewVec3(0.85, 0.85, 0.85)),
			lights.NewPointLight(core.NewVec3(0, 3, -4), core.NewVec3(0.3, 0.3, 0.35)),
		},
		Ambient:      core.NewVec3(0.06, 0.06, 0.06),
		Background:   core.NewVec3(0.05, 0.05, 0.08),
		CameraConfig: cameraConfig,
	}
}
