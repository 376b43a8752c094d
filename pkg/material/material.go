package material

import (
	"fmt"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

// Material holds the Phong shading coefficients of a surface.
// Diffuse and Specular are linear RGB reflectances, Shininess is the
// specular exponent, and Reflectivity blends local shading against the
// mirror bounce (0 = fully local, 1 = pure mirror).
type Material struct {
	Diffuse      core.Vec3
	Specular     core.Vec3
	Shininess    float64
	Reflectivity float64
}

// NewMaterial creates a material with explicit coefficients
func NewMaterial(diffuse, specular core.Vec3, shininess, reflectivity float64) Material {
	return Material{
		Diffuse:      diffuse,
		Specular:     specular,
		Shininess:    shininess,
		Reflectivity: reflectivity,
	}
}

// Matte creates a purely diffuse material
func Matte(diffuse core.Vec3) Material {
	return Material{Diffuse: diffuse, Shininess: 1}
}

// Glossy creates a diffuse material with a white specular highlight
func Glossy(diffuse core.Vec3, shininess float64) Material {
	return Material{
		Diffuse:   diffuse,
		Specular:  core.NewVec3(1, 1, 1),
		Shininess: shininess,
	}
}

// Mirror creates a reflective material. reflectivity below 1 keeps a
// dim gray local term so partial mirrors still show their surroundings.
func Mirror(reflectivity float64) Material {
	return Material{
		Diffuse:      core.NewVec3(0.1, 0.1, 0.1),
		Specular:     core.NewVec3(1, 1, 1),
		Shininess:    256,
		Reflectivity: reflectivity,
	}
}

// Validate reports the first out-of-range coefficient. Scenes are
// validated once at load time so the render loop can trust every
// material it sees.
func (m Material) Validate() error {
	if !inUnitRange(m.Diffuse) {
		return fmt.Errorf("material: diffuse %v outside [0,1]", m.Diffuse)
	}
	if !inUnitRange(m.Specular) {
		return fmt.Errorf("material: specular %v outside [0,1]", m.Specular)
	}
	if m.Shininess < 1 {
		return fmt.Errorf("material: shininess %v below 1", m.Shininess)
	}
	if m.Reflectivity < 0 || m.Reflectivity > 1 {
		return fmt.Errorf("material: reflectivity %v outside [0,1]", m.Reflectivity)
	}
	return nil
}

func inUnitRange(v core.Vec3) bool {
	return v.X >= 0 && v.X <= 1 && v.Y >= 0 && v.Y <= 1 && v.Z >= 0 && v.Z <= 1
}
