package lights

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// PointLight emits equally in all directions from a single position
type PointLight struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
	Falloff   bool // Inverse-square falloff; off by default
}

// NewPointLight creates a point light
func NewPointLight(position, color core.Vec3, intensity float64) *PointLight {
	return &PointLight{Position: position, Color: color, Intensity: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample implements the Light interface
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{Direction: core.NewVec3(0, 1, 0)}
	}

	return LightSample{
		Direction: toLight.Multiply(1 / distance),
		Distance:  distance,
		Emission:  pl.Emission().Multiply(attenuation(pl.Falloff, distance)),
	}
}

// SampleEmission emits uniformly over the sphere of directions
func (pl *PointLight) SampleEmission(bounds core.AABB, sample core.Vec2) EmissionSample {
	return EmissionSample{Origin: pl.Position, Direction: core.SampleOnUnitSphere(sample)}
}

func (pl *PointLight) Emission() core.Vec3 {
	return pl.Color.Multiply(pl.Intensity)
}

// Flux integrates the intensity over the sphere of directions
func (pl *PointLight) Flux(bounds core.AABB) core.Vec3 {
	return pl.Emission().Multiply(4 * math.Pi)
}

func (pl *PointLight) Power() float64 {
	return powerOf(pl.Emission())
}

// DirectionalLight is a light infinitely far away, arriving from a single
// direction everywhere in the scene.
type DirectionalLight struct {
	Direction core.Vec3 // Direction the light travels
	Color     core.Vec3
	Intensity float64
}

// NewDirectionalLight creates a directional light travelling along direction
func NewDirectionalLight(direction, color core.Vec3, intensity float64) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Color: color, Intensity: intensity}
}

func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Sample implements the Light interface
func (dl *DirectionalLight) Sample(point core.Vec3) LightSample {
	return LightSample{
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		Emission:  dl.Emission(),
	}
}

// SampleEmission starts photons on a disc facing the light that covers the
// scene bounds, just outside them.
func (dl *DirectionalLight) SampleEmission(bounds core.AABB, sample core.Vec2) EmissionSample {
	center := bounds.Center()
	radius := emissionRadius(bounds)
	tangent, bitangent := core.Basis(dl.Direction)

	r := radius * math.Sqrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	offset := tangent.Multiply(r * math.Cos(phi)).Add(bitangent.Multiply(r * math.Sin(phi)))

	return EmissionSample{
		Origin:    center.Add(offset).Subtract(dl.Direction.Multiply(radius + 1)),
		Direction: dl.Direction,
	}
}

func (dl *DirectionalLight) Emission() core.Vec3 {
	return dl.Color.Multiply(dl.Intensity)
}

// Flux is the irradiance crossing the emission disc
func (dl *DirectionalLight) Flux(bounds core.AABB) core.Vec3 {
	r := emissionRadius(bounds)
	return dl.Emission().Multiply(math.Pi * r * r)
}

func (dl *DirectionalLight) Power() float64 {
	return powerOf(dl.Emission())
}

// emissionRadius is the radius of a disc covering bounds from any direction
func emissionRadius(bounds core.AABB) float64 {
	return bounds.Size().Length() * 0.5
}
