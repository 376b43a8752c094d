package geometry

import (
	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/material"
)

// Primitive is anything a ray can hit. The shipped implementations are
// Sphere and Plane; the scene loader's type switch is the one place
// that enumerates them.
type Primitive interface {
	// Hit returns the closest intersection with t in (tMin, tMax),
	// or false if the ray misses.
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
}

// HitRecord describes a ray-primitive intersection
type HitRecord struct {
	Point     core.Vec3         // Intersection point
	Normal    core.Vec3         // Surface normal facing the incident ray
	T         float64           // Ray parameter at the intersection
	FrontFace bool              // Whether the front side was hit
	Material  material.Material // Surface material
}

// SetFaceNormal stores the normal flipped to oppose the incident ray
// and records which side was hit. Shading can then treat the normal as
// always facing the viewer, so back sides of planes light correctly.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
