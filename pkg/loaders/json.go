// Package loaders reads and writes scene description files.
package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/lights"
	"github.com/NickEvans/go-raytracer/pkg/material"
	"github.com/NickEvans/go-raytracer/pkg/scene"
)

// vec3JSON is the wire form of a point or direction
type vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// colorJSON is the wire form of a linear RGB color
type colorJSON struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// cameraJSON carries camera settings. Vector fields are pointers so an
// explicit origin is distinguishable from an omitted field; the scalar
// fields treat zero as omitted because zero is invalid for all three.
type cameraJSON struct {
	Center      *vec3JSON `json:"center,omitempty"`
	LookAt      *vec3JSON `json:"look_at,omitempty"`
	Up          *vec3JSON `json:"up,omitempty"`
	Width       int       `json:"width,omitempty"`
	AspectRatio float64   `json:"aspect_ratio,omitempty"`
	VFov        float64   `json:"vfov,omitempty"`
}

type materialJSON struct {
	Diffuse      colorJSON `json:"diffuse"`
	Specular     colorJSON `json:"specular"`
	Shininess    float64   `json:"shininess,omitempty"`
	Reflectivity float64   `json:"reflectivity,omitempty"`
}

// objectJSON is the union of all primitive fields; Type selects which
// ones apply
type objectJSON struct {
	Type     string `json:"type"`
	Material string `json:"material"`

	// Sphere fields
	Center *vec3JSON `json:"center,omitempty"`
	Radius float64   `json:"radius,omitempty"`

	// Plane fields
	Point  *vec3JSON `json:"point,omitempty"`
	Normal *vec3JSON `json:"normal,omitempty"`
}

type lightJSON struct {
	Position vec3JSON  `json:"position"`
	Color    colorJSON `json:"color"`
}

type sceneJSON struct {
	Camera     *cameraJSON             `json:"camera,omitempty"`
	Ambient    *colorJSON              `json:"ambient,omitempty"`
	Background *colorJSON              `json:"background,omitempty"`
	Materials  map[string]materialJSON `json:"materials"`
	Objects    []objectJSON            `json:"objects"`
	Lights     []lightJSON             `json:"lights"`
}

func (v *vec3JSON) toVec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

func (c *colorJSON) toVec3() core.Vec3 {
	return core.NewVec3(c.R, c.G, c.B)
}

func vecPtr(v core.Vec3) *vec3JSON {
	return &vec3JSON{X: v.X, Y: v.Y, Z: v.Z}
}

func colorPtr(v core.Vec3) *colorJSON {
	return &colorJSON{R: v.X, G: v.Y, B: v.Z}
}

// defaultCameraConfig frames the origin the way the built-in scenes
// do, so a file only has to mention the camera fields it changes
func defaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(0, 1, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       500,
		AspectRatio: 1.0,
		VFov:        40.0,
	}
}

func (c *cameraJSON) toConfig() geometry.CameraConfig {
	config := defaultCameraConfig()
	if c == nil {
		return config
	}
	if c.Center != nil {
		config.Center = c.Center.toVec3()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.toVec3()
	}
	if c.Up != nil {
		config.Up = c.Up.toVec3()
	}
	if c.Width != 0 {
		config.Width = c.Width
	}
	if c.AspectRatio != 0 {
		config.AspectRatio = c.AspectRatio
	}
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	return config
}

// Load reads a scene from a JSON file
func Load(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read decodes and validates a JSON scene. Unknown fields are
// rejected so typos in hand-written files fail loudly instead of
// silently falling back to defaults.
func Read(r io.Reader) (*scene.Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc sceneJSON
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return doc.toScene()
}

func (doc *sceneJSON) toScene() (*scene.Scene, error) {
	s := &scene.Scene{
		CameraConfig: doc.Camera.toConfig(),
		Ambient:      core.NewVec3(0.08, 0.08, 0.08),
		Background:   core.NewVec3(0.2, 0.7, 0.8),
	}
	// Omitted color terms fall back to the defaults above; an explicit
	// zero stays zero
	if doc.Ambient != nil {
		s.Ambient = doc.Ambient.toVec3()
	}
	if doc.Background != nil {
		s.Background = doc.Background.toVec3()
	}

	materials := make(map[string]material.Material, len(doc.Materials))
	for name, m := range doc.Materials {
		shininess := m.Shininess
		if shininess == 0 {
			shininess = 1 // Omitted shininess means matte
		}
		materials[name] = material.NewMaterial(
			m.Diffuse.toVec3(), m.Specular.toVec3(), shininess, m.Reflectivity)
	}

	for i, obj := range doc.Objects {
		mat, ok := materials[obj.Material]
		if !ok {
			return nil, fmt.Errorf("object %d: unknown material %q", i, obj.Material)
		}

		switch obj.Type {
		case "sphere":
			if obj.Center == nil {
				return nil, fmt.Errorf("object %d: sphere requires a center", i)
			}
			s.Primitives = append(s.Primitives, geometry.NewSphere(obj.Center.toVec3(), obj.Radius, mat))
		case "plane":
			if obj.Point == nil || obj.Normal == nil {
				return nil, fmt.Errorf("object %d: plane requires a point and a normal", i)
			}
			s.Primitives = append(s.Primitives, geometry.NewPlane(obj.Point.toVec3(), obj.Normal.toVec3(), mat))
		default:
			return nil, fmt.Errorf("object %d: unknown type %q", i, obj.Type)
		}
	}

	for _, l := range doc.Lights {
		s.Lights = append(s.Lights, lights.NewPointLight(l.Position.toVec3(), l.Color.toVec3()))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes a scene to a JSON file
func Save(path string, s *scene.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	return Write(f, s)
}

// Write encodes a scene as indented JSON. Materials are deduplicated:
// primitives sharing a material share one named entry.
func Write(w io.Writer, s *scene.Scene) error {
	doc, err := fromScene(s)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

func fromScene(s *scene.Scene) (*sceneJSON, error) {
	config := s.CameraConfig
	doc := &sceneJSON{
		Camera: &cameraJSON{
			Center:      vecPtr(config.Center),
			LookAt:      vecPtr(config.LookAt),
			Up:          vecPtr(config.Up),
			Width:       config.Width,
			AspectRatio: config.AspectRatio,
			VFov:        config.VFov,
		},
		Ambient:    colorPtr(s.Ambient),
		Background: colorPtr(s.Background),
		Materials:  make(map[string]materialJSON),
	}

	// Name materials in first-use order
	names := make(map[material.Material]string)
	intern := func(m material.Material) string {
		if name, ok := names[m]; ok {
			return name
		}
		name := fmt.Sprintf("material%d", len(names))
		names[m] = name
		doc.Materials[name] = materialJSON{
			Diffuse:      colorJSON{R: m.Diffuse.X, G: m.Diffuse.Y, B: m.Diffuse.Z},
			Specular:     colorJSON{R: m.Specular.X, G: m.Specular.Y, B: m.Specular.Z},
			Shininess:    m.Shininess,
			Reflectivity: m.Reflectivity,
		}
		return name
	}

	for _, prim := range s.Primitives {
		switch p := prim.(type) {
		case *geometry.Sphere:
			doc.Objects = append(doc.Objects, objectJSON{
				Type:     "sphere",
				Material: intern(p.Material),
				Center:   vecPtr(p.Center),
				Radius:   p.Radius,
			})
		case *geometry.Plane:
			doc.Objects = append(doc.Objects, objectJSON{
				Type:     "plane",
				Material: intern(p.Material),
				Point:    vecPtr(p.Point),
				Normal:   vecPtr(p.Normal),
			})
		default:
			return nil, fmt.Errorf("cannot serialize primitive type %T", prim)
		}
	}

	for _, l := range s.Lights {
		doc.Lights = append(doc.Lights, lightJSON{
			Position: vec3JSON{X: l.Position.X, Y: l.Position.Y, Z: l.Position.Z},
			Color:    colorJSON{R: l.Color.X, G: l.Color.Y, B: l.Color.Z},
		})
	}

	return doc, nil
}
