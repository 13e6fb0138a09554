package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
)

// maxGlossyAngle is the cone angle in degrees at glossiness 1
const maxGlossyAngle = 80.0

// reflection traces the mirror ray, tinted by the material's reflect color
func (rt *Raytracer) reflection(ray *geometry.Ray, normal core.Vec3, depth int, factor float64, random *rand.Rand) core.Vec3 {
	mat := ray.Object.Material
	direction := ray.Direction.Reflect(normal)

	color := rt.trace(ray.Point, direction, depth+1, factor*mat.Reflectivity, random)
	return mat.ReflectColor.MultiplyVec(color).Multiply(mat.Reflectivity)
}

// refraction splits the ray at a dielectric boundary into a reflected and a
// transmitted ray weighted by the Fresnel reflectance. Under total internal
// reflection the reflected ray carries all the energy. normal is the
// outward surface normal.
func (rt *Raytracer) refraction(ray *geometry.Ray, normal core.Vec3, depth int, factor float64, random *rand.Rand) core.Vec3 {
	mat := ray.Object.Material

	transmitted, cos1, cos2, tir := core.Refract(ray.Direction, normal, mat.IOR)
	reflected := ray.Direction.Reflect(normal)
	if tir {
		return rt.trace(ray.Point, reflected, depth+1, factor, random)
	}

	r := core.Fresnel(cos1, cos2, mat.IOR)
	reflectColor := rt.trace(ray.Point, reflected, depth+1, factor*r, random)
	refractColor := rt.trace(ray.Point, transmitted, depth+1, factor*(1-r), random)

	return refractColor.Multiply((1 - r) * mat.Refraction).Add(reflectColor.Multiply(r))
}

// glossyReflection averages an N x N grid of rays jittered around the
// mirror direction
func (rt *Raytracer) glossyReflection(ray *geometry.Ray, normal core.Vec3, depth int, factor float64, random *rand.Rand) core.Vec3 {
	mat := ray.Object.Material
	n := rt.config.GlossyReflectSamples
	ideal := ray.Direction.Reflect(normal).Normalize()

	sum := rt.glossySamples(ray.Point, ideal, normal, mat.Glossiness, n, depth, factor*mat.Reflectivity/float64(n), random)
	return mat.ReflectColor.MultiplyVec(sum).Multiply(mat.Reflectivity / float64(n*n))
}

// glossyRefraction is refraction with the transmitted ray replaced by an
// N x N grid of rays jittered around the refracted direction
func (rt *Raytracer) glossyRefraction(ray *geometry.Ray, normal core.Vec3, depth int, factor float64, random *rand.Rand) core.Vec3 {
	mat := ray.Object.Material

	transmitted, cos1, cos2, tir := core.Refract(ray.Direction, normal, mat.IOR)
	reflected := ray.Direction.Reflect(normal)
	if tir {
		return rt.trace(ray.Point, reflected, depth+1, factor, random)
	}

	r := core.Fresnel(cos1, cos2, mat.IOR)
	reflectColor := rt.trace(ray.Point, reflected, depth+1, factor*r, random)

	n := rt.config.GlossyRefractSamples
	sum := rt.glossySamples(ray.Point, transmitted, normal, mat.Glossiness, n, depth, factor*(1-r)*mat.Refraction/float64(n), random)

	return sum.Multiply((1 - r) * mat.Refraction / float64(n*n)).Add(reflectColor.Multiply(r))
}

// glossySamples traces n*n rays through a stratified grid on a disc around
// ideal and returns their sum. The disc radius grows with glossiness up to
// a cone of maxGlossyAngle. A sample that would cross to the other side of
// the surface than ideal is mirrored through ideal instead.
func (rt *Raytracer) glossySamples(origin, ideal, normal core.Vec3, glossiness float64, n, depth int, factor float64, random *rand.Rand) core.Vec3 {
	radius := math.Tan(maxGlossyAngle * glossiness * math.Pi / 360.0)
	tangent, bitangent := core.Basis(ideal)
	side := ideal.Dot(normal)

	ringStep := 1.0 / float64(n)
	angleStep := 2 * math.Pi / float64(n)

	var sum core.Vec3
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			u := (float64(i) + random.Float64()) * ringStep * radius
			theta := (float64(j) + random.Float64()) * angleStep

			offset := tangent.Multiply(u * math.Cos(theta)).Add(bitangent.Multiply(u * math.Sin(theta)))
			direction := ideal.Add(offset)
			if direction.Dot(normal)*side <= 0 {
				direction = ideal.Subtract(offset)
			}

			sum = sum.Add(rt.trace(origin, direction.Normalize(), depth+1, factor, random))
		}
	}
	return sum
}
