package geometry

import (
	"fmt"
	"math"

	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/material"
)

// Plane is an infinite plane through Point with the given normal
type Plane struct {
	Point    core.Vec3
	Normal   core.Vec3
	Material material.Material
}

// NewPlane creates a new plane. The normal is normalized here so
// callers can pass any non-zero orientation vector.
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Validate rejects planes without an orientation. A zero normal can
// only come from constructing the struct directly, since NewPlane
// normalizes and the zero vector normalizes to itself.
func (p *Plane) Validate() error {
	if p.Normal.LengthSquared() == 0 {
		return fmt.Errorf("plane: zero normal")
	}
	return p.Material.Validate()
}

// Hit intersects the ray with the plane. Rays running parallel to the
// surface miss, everything else has exactly one root.
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hit := &HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}
