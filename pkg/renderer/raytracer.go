package renderer

import (
	"image"
	"math"
	"math/rand"

	"github.com/NickEvans/go-raytracer/pkg/core"
	"github.com/NickEvans/go-raytracer/pkg/geometry"
	"github.com/NickEvans/go-raytracer/pkg/scene"
)

// Options contains rendering configuration
type Options struct {
	MaxDepth        int     // Maximum ray bounce depth, counting the primary ray
	Epsilon         float64 // Minimum hit distance, avoids surface self-intersection
	SamplesPerPixel int     // Rays per pixel; 1 renders pixel centers deterministically
	Workers         int     // Number of parallel workers (0 = use CPU count)
	TileSize        int     // Size of each square tile
	Gamma           float64 // Gamma applied when converting to 8-bit output
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		MaxDepth:        5,
		Epsilon:         1e-3,
		SamplesPerPixel: 1,
		Workers:         0, // Auto-detect CPU count
		TileSize:        64,
		Gamma:           1.0,
	}
}

// normalize fills unset fields with their defaults, so callers can
// build Options from flags or query params without repeating them
func (o Options) normalize() Options {
	defaults := DefaultOptions()
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaults.MaxDepth
	}
	if o.Epsilon <= 0 {
		o.Epsilon = defaults.Epsilon
	}
	if o.SamplesPerPixel <= 0 {
		o.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if o.TileSize <= 0 {
		o.TileSize = defaults.TileSize
	}
	if o.Gamma <= 0 {
		o.Gamma = defaults.Gamma
	}
	return o
}

// Raytracer renders a scene by recursive ray tracing: Phong shading at
// the closest hit, shadow rays toward each light, and mirror reflection
// up to the depth limit. It holds no mutable state, so a single
// instance is shared by all workers.
type Raytracer struct {
	scene   *scene.Scene
	camera  *geometry.Camera
	options Options
	logger  core.Logger
}

// NewRaytracer creates a raytracer for a scene that has already been
// validated. A nil logger falls back to stdout.
func NewRaytracer(s *scene.Scene, options Options, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:   s,
		camera:  geometry.NewCamera(s.CameraConfig),
		options: options.normalize(),
		logger:  logger,
	}
}

// Options returns the normalized rendering configuration
func (rt *Raytracer) Options() Options {
	return rt.options
}

// traceRay returns the color seen along a ray. Reflective surfaces
// recurse into the mirror direction and blend by reflectivity; at the
// depth limit they render as if opaque instead of going black.
func (rt *Raytracer) traceRay(ray core.Ray, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := rt.scene.Hit(ray, rt.options.Epsilon, math.Inf(1))
	if !isHit {
		return rt.scene.Background
	}

	local := rt.shade(ray, hit)

	reflectivity := hit.Material.Reflectivity
	if reflectivity <= 0 || depth <= 1 {
		return local
	}

	origin := hit.Point.Add(hit.Normal.Multiply(rt.options.Epsilon))
	reflected := core.NewRay(origin, ray.Direction.Reflect(hit.Normal))
	bounce := rt.traceRay(reflected, depth-1)

	return local.Multiply(1.0 - reflectivity).Add(bounce.Multiply(reflectivity))
}

// shade computes the Phong color at a hit point: an ambient term plus
// diffuse and specular contributions from every light that is neither
// behind the surface nor blocked by other geometry. Shadowed lights
// contribute nothing; the ambient term always survives.
func (rt *Raytracer) shade(ray core.Ray, hit *geometry.HitRecord) core.Vec3 {
	mat := hit.Material
	color := rt.scene.Ambient.MultiplyVec(mat.Diffuse)

	viewDir := ray.Direction.Negate()
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(rt.options.Epsilon))

	for _, light := range rt.scene.Lights {
		lightDir := light.Position.Subtract(hit.Point).Normalize()

		nDotL := hit.Normal.Dot(lightDir)
		if nDotL <= 0 {
			continue // Light is behind the surface
		}
		if rt.scene.Occluded(shadowOrigin, light.Position, rt.options.Epsilon) {
			continue // In shadow
		}

		color = color.Add(mat.Diffuse.MultiplyVec(light.Color).Multiply(nDotL))

		// Specular highlight along the light's mirror direction
		reflectDir := lightDir.Negate().Reflect(hit.Normal)
		if rDotV := reflectDir.Dot(viewDir); rDotV > 0 {
			spec := math.Pow(rDotV, mat.Shininess)
			color = color.Add(mat.Specular.MultiplyVec(light.Color).Multiply(spec))
		}
	}

	return color
}

// renderTile renders the pixels inside bounds and returns them in
// row-major order. With one sample per pixel rays go through pixel
// centers and the random generator is not touched, so repeated renders
// are identical regardless of tile scheduling.
func (rt *Raytracer) renderTile(bounds image.Rectangle, random *rand.Rand) []core.Vec3 {
	pix := make([]core.Vec3, 0, bounds.Dx()*bounds.Dy())
	samples := rt.options.SamplesPerPixel

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var color core.Vec3
			if samples == 1 {
				color = rt.traceRay(rt.camera.GetRay(i, j), rt.options.MaxDepth)
			} else {
				for s := 0; s < samples; s++ {
					ray := rt.camera.GetRayJittered(i, j, random)
					color = color.Add(rt.traceRay(ray, rt.options.MaxDepth))
				}
				color = color.Multiply(1.0 / float64(samples))
			}
			pix = append(pix, color)
		}
	}

	return pix
}
