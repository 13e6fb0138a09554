package integrator

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
)

// directLight sums the ambient term and every light's shadow-tested
// contribution at the hit
func (rt *Raytracer) directLight(ray *geometry.Ray, normal, diffuse core.Vec3) core.Vec3 {
	color := diffuse.Multiply(rt.config.Ambient)

	surface := lights.Surface{
		Point:    ray.Point,
		Normal:   normal,
		ToViewer: ray.Direction.Negate(),
		Diffuse:  diffuse,
		Material: ray.Object.Material,
	}
	for _, light := range rt.scene.Lights {
		color = color.Add(lights.Illuminate(light, surface, rt.scene))
	}
	return color
}

// photonLight estimates indirect light at the hit from nearby photons
func (rt *Raytracer) photonLight(ray *geometry.Ray, normal, diffuse core.Vec3) core.Vec3 {
	if rt.scene.Photons == nil {
		return core.Vec3{}
	}
	return rt.scene.Photons.Estimate(
		ray.Point, normal, diffuse, ray.Object.Material.DiffuseFactor,
		rt.config.MaxPhotonSamples, rt.config.PhotonSearchRadius,
	)
}
