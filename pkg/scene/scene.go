package scene

import (
	"fmt"

	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering: geometry,
// point lights, the ambient term, the background color and the camera
// description. A scene is immutable for the duration of a render;
// workers share it read-only without any locking.
type Scene struct {
	Primitives   []geometry.Primitive
	Lights       []lights.PointLight
	Ambient      core.Vec3 // ambient light, modulated per material
	Background   core.Vec3 // color for rays that hit nothing
	CameraConfig geometry.CameraConfig
}

// Hit finds the closest intersection along the ray by brute-force scan
// over every primitive. Scenes are small enough that a linear scan
// beats maintaining an acceleration structure. The running closest t
// narrows tMax for later primitives; on an exact tie the earlier
// primitive in slice order wins, so a fixed scene always renders the
// same image.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var closest *geometry.HitRecord
	closestSoFar := tMax

	for _, prim := range s.Primitives {
		if hit, isHit := prim.Hit(ray, tMin, closestSoFar); isHit {
			if closest == nil || hit.T < closest.T {
				closest = hit
				closestSoFar = hit.T
			}
		}
	}

	return closest, closest != nil
}

// Occluded reports whether any primitive blocks the segment between two
// points. Shadow tests call it with `from` already offset off the
// surface; epsilon additionally guards the near end of the segment
// against self-intersection. Any hit occludes, so the scan stops at
// the first one regardless of distance.
func (s *Scene) Occluded(from, to core.Vec3, epsilon float64) bool {
	segment := to.Subtract(from)
	distance := segment.Length()
	if distance == 0 {
		return false
	}
	ray := core.NewRay(from, segment.Multiply(1.0/distance))

	for _, prim := range s.Primitives {
		if _, isHit := prim.Hit(ray, epsilon, distance); isHit {
			return true
		}
	}
	return false
}

// Validate checks the scene before rendering starts: at least one
// primitive and one light, every primitive and light within range, a
// camera that can produce a view basis, and non-negative color terms.
// The render loop never validates; it assumes a scene that passed
// here, which keeps the per-ray path free of error returns.
func (s *Scene) Validate() error {
	if len(s.Primitives) == 0 {
		return fmt.Errorf("scene: no primitives")
	}
	if len(s.Lights) == 0 {
		return fmt.Errorf("scene: no lights")
	}

	for i, prim := range s.Primitives {
		if v, ok := prim.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("scene: primitive %d: %w", i, err)
			}
		}
	}
	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("scene: light %d: %w", i, err)
		}
	}

	if hasNegative(s.Ambient) {
		return fmt.Errorf("scene: negative ambient %v", s.Ambient)
	}
	if hasNegative(s.Background) {
		return fmt.Errorf("scene: negative background %v", s.Background)
	}

	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

func hasNegative(v core.Vec3) bool {
	return v.X < 0 || v.Y < 0 || v.Z < 0
}
