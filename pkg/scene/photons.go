package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/photon"
)

// emitPhotons shoots the configured number of photons from the lights,
// splitting them by light power, and builds the photon map. It returns the
// number of photons stored.
func (s *Scene) emitPhotons() (int, error) {
	s.Photons = photon.NewMap()
	defer s.Photons.Build()

	budget := lights.NewPhotonBudget(s.Lights, s.Config.PhotonCount)
	if budget.TotalPower() <= 0 {
		s.logger.Warning("Lights carry no power; skipping photon emission")
		return 0, nil
	}
	s.logger.Debugf("%s", budget)

	random := rand.New(rand.NewSource(s.Config.Seed))
	for i, light := range s.Lights {
		count := budget.Count(i)
		if count == 0 {
			continue
		}

		power := light.Flux(s.bounds).Multiply(1.0 / float64(count))
		for j := 0; j < count; j++ {
			e := light.SampleEmission(s.bounds, core.NewVec2(random.Float64(), random.Float64()))
			if err := s.tracePhoton(geometry.NewRay(e.Origin, e.Direction), power, random); err != nil {
				return s.Photons.Len(), err
			}
		}
	}
	return s.Photons.Len(), nil
}

// tracePhoton follows one photon through the scene. The first surface hit
// only scatters it since direct light is evaluated by the integrator; every
// later diffuse hit deposits the photon. Russian roulette on the material's
// reflect, refract and diffuse weights chooses what happens at each hit.
func (s *Scene) tracePhoton(ray *geometry.Ray, power core.Vec3, random *rand.Rand) error {
	for bounce := 0; bounce <= s.Config.PhotonBounces; bounce++ {
		if !s.Intersect(ray) || ray.Object.Emissive() {
			return nil
		}

		obj := ray.Object
		mat := obj.Material
		n := obj.Normal(ray)
		facing := n
		if facing.Dot(ray.Direction) > 0 {
			facing = facing.Negate()
		}
		diffuse := mat.DiffuseAt(obj.UV(ray), ray.Point)

		if bounce > 0 && mat.DiffuseFactor > 0 {
			err := s.Photons.Store(photon.Photon{
				Position:  ray.Point,
				Direction: ray.Direction,
				Normal:    facing,
				Power:     power,
			})
			if err != nil {
				return err
			}
		}

		pReflect := math.Max(0, mat.Reflectivity)
		pRefract := math.Max(0, mat.Refraction)
		pDiffuse := math.Max(0, mat.DiffuseFactor*diffuse.Sum()/3)
		if sum := pReflect + pRefract + pDiffuse; sum > 1 {
			pReflect /= sum
			pRefract /= sum
			pDiffuse /= sum
		}

		var direction core.Vec3
		r := random.Float64()
		switch {
		case r < pReflect:
			direction = ray.Direction.Reflect(facing)
			power = power.MultiplyVec(mat.ReflectColor)
		case r < pReflect+pRefract:
			dir, _, _, tir := core.Refract(ray.Direction, n, mat.IOR)
			if tir {
				dir = ray.Direction.Reflect(facing)
			}
			direction = dir
		case r < pReflect+pRefract+pDiffuse:
			direction = core.SampleCosineHemisphere(facing, core.NewVec2(random.Float64(), random.Float64()))
			// Keep the color of the surface while the survival probability
			// preserves the total energy
			power = power.MultiplyVec(diffuse).Multiply(1.0 / (diffuse.Sum() / 3))
		default:
			return nil
		}

		*ray = *geometry.NewRay(ray.Point, direction)
	}
	return nil
}
