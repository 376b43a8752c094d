package scene

import (
	"sort"

	"github.com/NickEvans/go-raytracer/pkg/geometry"
)

// SceneInfo describes a built-in scene for listings such as the web
// UI's scene picker.
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// builders maps scene names to their constructors. File-based scenes
// are loaded by explicit path and are not listed here.
var builders = map[string]func(...geometry.CameraConfig) *Scene{
	"default":  NewDefaultScene,
	"mirrors":  NewMirrorsScene,
	"tricolor": NewTriColorScene,
}

var descriptions = map[string]string{
	"default":  "Three spheres with mixed materials on a ground plane",
	"mirrors":  "Facing mirror walls repeating a pair of spheres",
	"tricolor": "Red, green and blue matte spheres under one light",
}

// Catalog returns the built-in scenes sorted by name
func Catalog() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builders))
	for name := range builders {
		infos = append(infos, SceneInfo{Name: name, Description: descriptions[name]})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// BuiltIn constructs the named built-in scene, reporting false for
// names the catalog does not contain.
func BuiltIn(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, bool) {
	builder, ok := builders[name]
	if !ok {
		return nil, false
	}
	return builder(cameraOverrides...), true
}
