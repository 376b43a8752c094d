package geometry

import (
	"fmt"
	"math"

	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/material"
)

// Sphere is defined by a center point and a radius
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Validate rejects degenerate geometry and out-of-range materials
func (s *Sphere) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("sphere: radius %v must be positive", s.Radius)
	}
	return s.Material.Validate()
}

// Hit solves the ray-sphere quadratic in half-b form and returns the
// nearest root in (tMin, tMax). If the near root is out of range the
// far root is tried, which covers rays starting inside the sphere.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hit := &HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hit.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}
