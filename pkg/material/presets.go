package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// NewMetal returns a mirror tinted by albedo. Fuzziness in [0, 1] becomes
// the glossiness; 0 is a perfect mirror.
func NewMetal(albedo core.Vec3, fuzziness float64) *Material {
	m := New()
	m.DiffuseFactor = 0
	m.Reflectivity = 1
	m.ReflectColor = albedo
	m.SpecularColor = albedo
	m.SpecularFactor = 0.5
	m.Glossiness = math.Max(0, math.Min(1, fuzziness))
	return m
}

// NewDielectric returns clear glass-like material with the given index of
// refraction. Reflection comes from the Fresnel term alone.
func NewDielectric(ior float64) *Material {
	m := New()
	m.DiffuseFactor = 0
	m.Refraction = 1
	m.IOR = ior
	m.SpecularFactor = 0.8
	m.Shininess = 120
	return m
}
