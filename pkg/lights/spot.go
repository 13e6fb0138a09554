package lights

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// SpotLight is a point light restricted to a cone with a smooth edge
type SpotLight struct {
	Position  core.Vec3
	Direction core.Vec3 // Normalized cone axis
	Color     core.Vec3
	Intensity float64
	Falloff   bool // Inverse-square falloff; off by default

	cosTotalWidth   float64 // Cosine of the outer cone angle
	cosFalloffStart float64 // Cosine of the inner, full-intensity cone angle
}

// NewSpotLight aims a spot light from position at target. coneAngle is the
// outer half-angle in degrees and coneDelta the width of the soft edge.
func NewSpotLight(position, target, color core.Vec3, intensity, coneAngle, coneDelta float64) *SpotLight {
	totalWidth := coneAngle * math.Pi / 180.0
	falloffStart := (coneAngle - coneDelta) * math.Pi / 180.0

	return &SpotLight{
		Position:        position,
		Direction:       target.Subtract(position).Normalize(),
		Color:           color,
		Intensity:       intensity,
		cosTotalWidth:   math.Cos(totalWidth),
		cosFalloffStart: math.Cos(falloffStart),
	}
}

func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Sample implements the Light interface
func (sl *SpotLight) Sample(point core.Vec3) LightSample {
	toLight := sl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{Direction: core.NewVec3(0, 1, 0)}
	}
	toLight = toLight.Multiply(1 / distance)

	spot := sl.falloff(sl.Direction.Dot(toLight.Negate()))
	return LightSample{
		Direction: toLight,
		Distance:  distance,
		Emission:  sl.Emission().Multiply(spot * attenuation(sl.Falloff, distance)),
	}
}

// SampleEmission emits uniformly within the outer cone
func (sl *SpotLight) SampleEmission(bounds core.AABB, sample core.Vec2) EmissionSample {
	return EmissionSample{
		Origin:    sl.Position,
		Direction: core.SampleCone(sl.Direction, sl.cosTotalWidth, sample),
	}
}

func (sl *SpotLight) Emission() core.Vec3 {
	return sl.Color.Multiply(sl.Intensity)
}

// Flux integrates the intensity over the outer cone
func (sl *SpotLight) Flux(bounds core.AABB) core.Vec3 {
	return sl.Emission().Multiply(2 * math.Pi * (1 - sl.cosTotalWidth))
}

// Power scales the intensity by the solid angle fraction of the cone
func (sl *SpotLight) Power() float64 {
	return powerOf(sl.Emission()) * (1 - sl.cosTotalWidth) / 2
}

// falloff is 1 inside the inner cone, 0 outside the outer cone and a
// quartic ramp between them.
func (sl *SpotLight) falloff(cosAngle float64) float64 {
	if cosAngle < sl.cosTotalWidth {
		return 0.0
	}
	if cosAngle >= sl.cosFalloffStart {
		return 1.0
	}

	delta := (cosAngle - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * delta * delta
}
