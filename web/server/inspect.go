package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/material"
	"github.com/NickEvans/go-raytracer/pkg/renderer"
	"github.com/NickEvans/go-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	Geometry   string                 `json:"geometry"`
	Point      [3]float64             `json:"point"`
	Normal     [3]float64             `json:"normal"`
	Distance   float64                `json:"distance"`
	FrontFace  bool                   `json:"frontFace"`
	Properties map[string]interface{} `json:"properties"`
}

// handleInspect casts a ray through the requested pixel and reports
// what it hits, so the client can identify objects in the preview
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, ok := s.buildScene(req)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scene: %s", req.Scene))
		return
	}
	camera := geometry.NewCamera(sceneObj.CameraConfig)

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= camera.Width() || pixelY < 0 || pixelY >= camera.Height() {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	response := inspectPixel(sceneObj, camera, pixelX, pixelY)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// inspectPixel casts a ray through the pixel center and returns
// information about the first object hit
func inspectPixel(sceneObj *scene.Scene, camera *geometry.Camera, pixelX, pixelY int) InspectResponse {
	ray := camera.GetRay(pixelX, pixelY)
	epsilon := renderer.DefaultOptions().Epsilon

	// Same nearest-hit loop as the renderer, but keeping track of
	// which primitive produced the hit
	var closest *geometry.HitRecord
	var closestPrim geometry.Primitive
	for _, prim := range sceneObj.Primitives {
		if hit, isHit := prim.Hit(ray, epsilon, math.Inf(1)); isHit {
			if closest == nil || hit.T < closest.T {
				closest = hit
				closestPrim = prim
			}
		}
	}

	if closest == nil {
		return InspectResponse{Hit: false}
	}

	geometryType, geometryProps := extractGeometryInfo(closestPrim)
	return InspectResponse{
		Hit:       true,
		Geometry:  geometryType,
		Point:     [3]float64{closest.Point.X, closest.Point.Y, closest.Point.Z},
		Normal:    [3]float64{closest.Normal.X, closest.Normal.Y, closest.Normal.Z},
		Distance:  closest.T,
		FrontFace: closest.FrontFace,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(closest.Material),
			"geometry": geometryProps,
		},
	}
}

// extractMaterialInfo extracts the Phong coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"diffuse":      [3]float64{mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z},
		"specular":     [3]float64{mat.Specular.X, mat.Specular.Y, mat.Specular.Z},
		"shininess":    mat.Shininess,
		"reflectivity": mat.Reflectivity,
		"color": fmt.Sprintf("#%02x%02x%02x",
			int(mat.Diffuse.X*255), int(mat.Diffuse.Y*255), int(mat.Diffuse.Z*255)),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(prim geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := prim.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		return "plane", properties

	default:
		return "unknown", properties
	}
}
