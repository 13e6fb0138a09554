package lights

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeSpot        LightType = "spot"
)

// Light is a source of direct illumination and, in photon mode, of photons
type Light interface {
	Type() LightType

	// Sample returns the light arriving at point. Direction points from
	// point toward the light.
	Sample(point core.Vec3) LightSample

	// SampleEmission picks a photon origin and direction. bounds encloses
	// the scene, which directional lights need to aim their photons.
	SampleEmission(bounds core.AABB, sample core.Vec2) EmissionSample

	// Emission is the light's colored intensity
	Emission() core.Vec3

	// Flux is the total colored power leaving the light, shared out between
	// its photons. bounds is used as in SampleEmission.
	Flux(bounds core.AABB) core.Vec3

	// Power is the scalar share used to divide the photon budget
	Power() float64
}

// LightSample describes light arriving at a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from the shading point to the light
	Distance  float64   // Distance to the light, +Inf for directional lights
	Emission  core.Vec3 // Arriving radiance, including any falloff
}

// EmissionSample is a photon leaving a light
type EmissionSample struct {
	Origin    core.Vec3
	Direction core.Vec3
}

// Occluder answers shadow queries against the scene
type Occluder interface {
	// Visibility returns 1 when nothing blocks ray before maxDistance and 0
	// otherwise.
	Visibility(ray core.Ray, maxDistance float64) float64
}

// Surface is the shading point handed to Illuminate
type Surface struct {
	Point    core.Vec3
	Normal   core.Vec3
	ToViewer core.Vec3
	Diffuse  core.Vec3 // Diffuse color at the point, texture applied
	Material *material.Material
}

// Illuminate returns the direct contribution of light at s, shadow-tested
// against occluder. A nil occluder skips the shadow test.
func Illuminate(light Light, s Surface, occluder Occluder) core.Vec3 {
	sample := light.Sample(s.Point)
	if sample.Emission.IsZero() || s.Normal.Dot(sample.Direction) <= 0 {
		return core.Vec3{}
	}

	if occluder != nil {
		shadow := core.NewRay(s.Point, sample.Direction)
		if occluder.Visibility(shadow, sample.Distance) == 0 {
			return core.Vec3{}
		}
	}

	return sample.Emission.MultiplyVec(s.Material.Shade(s.ToViewer, s.Normal, sample.Direction, s.Diffuse))
}

// attenuation returns the inverse-square falloff factor when enabled
func attenuation(enabled bool, distance float64) float64 {
	if !enabled || distance <= 0 {
		return 1
	}
	return 1 / (distance * distance)
}

// powerOf reduces a colored intensity to a scalar
func powerOf(emission core.Vec3) float64 {
	return math.Max(0, emission.Sum()/3)
}
