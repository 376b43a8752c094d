package lights

import (
	"fmt"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

// PointLight emits from a single point in all directions. Color is a
// linear RGB intensity and may exceed 1 per channel; there is no
// distance falloff.
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3) PointLight {
	return PointLight{Position: position, Color: color}
}

// Validate rejects lights that cannot contribute to an image
func (l PointLight) Validate() error {
	if l.Color.X < 0 || l.Color.Y < 0 || l.Color.Z < 0 {
		return fmt.Errorf("light: negative intensity %v", l.Color)
	}
	if l.Color.Luminance() == 0 {
		return fmt.Errorf("light: zero intensity")
	}
	return nil
}
