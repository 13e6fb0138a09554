package integrator

import (
	"math/rand"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/scene"
)

// Raytracer traces rays through a frozen scene. It holds no mutable state,
// so one Raytracer serves any number of workers as long as each passes its
// own random source.
type Raytracer struct {
	scene  *scene.Scene
	config *scene.Config // The scene's own config, so Setup defaults are seen
}

// NewRaytracer creates a raytracer for s. The scene must be set up before
// the first trace.
func NewRaytracer(s *scene.Scene) *Raytracer {
	return &Raytracer{scene: s, config: &s.Config}
}

// TracePixel implements Integrator
func (rt *Raytracer) TracePixel(x, y int, random *rand.Rand) core.Vec3 {
	color := rt.config.Sampler.SamplePixel(x, y, rt.config.Width, rt.config.Height, rt.config.Camera, rt, random)
	return color.GammaCorrect(rt.config.Gamma)
}

// TraceRay returns the HDR color seen along ray, or the background color
// when it hits nothing.
func (rt *Raytracer) TraceRay(ray core.Ray, random *rand.Rand) core.Vec3 {
	return rt.trace(ray.Origin, ray.Direction, 0, 1.0, random)
}

// trace casts a secondary ray and shades whatever it hits
func (rt *Raytracer) trace(origin, direction core.Vec3, depth int, factor float64, random *rand.Rand) core.Vec3 {
	ray := geometry.NewRay(origin, direction)
	if !rt.scene.Intersect(ray) {
		return rt.config.Background
	}
	return rt.ComputeColor(ray, depth, factor, random)
}

// ComputeColor shades the hit cached in ray. depth is the recursion level of
// the ray and factor the fraction of its energy that reaches the camera;
// recursion stops, returning black, once depth exceeds MaxDepth or factor
// drops below RecursionThreshold. Emissive surfaces return their color
// unshaded.
func (rt *Raytracer) ComputeColor(ray *geometry.Ray, depth int, factor float64, random *rand.Rand) core.Vec3 {
	if depth > rt.config.MaxDepth || factor < rt.config.RecursionThreshold {
		return core.Vec3{}
	}

	obj := ray.Object
	mat := obj.Material
	if mat.Emissive {
		return mat.EmissiveColor
	}

	// n is the outward normal used for refraction; facing points back
	// toward the viewer and is used for lighting.
	n := obj.Normal(ray)
	facing := n
	if facing.Dot(ray.Direction) > 0 {
		facing = facing.Negate()
	}
	diffuse := mat.DiffuseAt(obj.UV(ray), ray.Point)

	var reflection core.Vec3
	if mat.Reflectivity > 0 {
		if mat.Glossiness > 0 && depth == 0 {
			reflection = rt.glossyReflection(ray, facing, depth, factor, random)
		} else {
			reflection = rt.reflection(ray, facing, depth, factor, random)
		}
	}

	var refraction core.Vec3
	if mat.Refraction > 0 {
		if mat.Glossiness > 0 && depth == 0 {
			refraction = rt.glossyRefraction(ray, n, depth, factor, random)
		} else {
			refraction = rt.refraction(ray, n, depth, factor, random)
		}
	}

	color := rt.directLight(ray, facing, diffuse).Add(reflection).Add(refraction)
	if rt.config.Mode == scene.ModePhoton {
		color = color.Add(rt.photonLight(ray, facing, diffuse))
	}
	return color
}
