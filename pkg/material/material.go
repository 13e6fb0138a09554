package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Material describes how a primitive responds to light. A material belongs to
// exactly one primitive; OwnerID records that association without holding a
// reference back to the primitive.
type Material struct {
	DiffuseColor  core.Vec3
	DiffuseFactor float64

	SpecularColor  core.Vec3
	SpecularFactor float64
	Shininess      float64

	// Roughness drives the Oren–Nayar diffuse term; zero is pure Lambertian.
	Roughness float64

	Reflectivity float64
	ReflectColor core.Vec3

	// Glossiness in [0, 1] maps to a sampling cone half-angle of up to 80°
	// for reflection and refraction.
	Glossiness float64

	Refraction float64
	IOR        float64

	Texture      Texture
	BumpMap      Texture
	NormalMap    Texture
	BumpStrength float64

	Emissive      bool
	EmissiveColor core.Vec3

	OwnerID int
}

// New returns a white, fully diffuse, non-reflective material
func New() *Material {
	return &Material{
		DiffuseColor:  core.NewVec3(1, 1, 1),
		DiffuseFactor: 1.0,
		SpecularColor: core.NewVec3(1, 1, 1),
		Shininess:     20,
		ReflectColor:  core.NewVec3(1, 1, 1),
		IOR:           1.0,
		BumpStrength:  1.0,
	}
}

// NewDiffuse returns a diffuse material of the given color
func NewDiffuse(color core.Vec3) *Material {
	m := New()
	m.DiffuseColor = color
	return m
}

// NewEmissive returns a material that renders as a constant emitter
func NewEmissive(color core.Vec3) *Material {
	m := New()
	m.SetEmissive(color)
	return m
}

// SetEmissive marks the material as an emitter of the given color
func (m *Material) SetEmissive(color core.Vec3) {
	m.Emissive = true
	m.EmissiveColor = color
}

// DiffuseAt returns the diffuse color at surface parameters uv, taking the
// texture into account when one is set.
func (m *Material) DiffuseAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	if m.Texture != nil {
		return m.Texture.Evaluate(uv, point)
	}
	return m.DiffuseColor
}

// NormalsAltered reports whether a bump or normal map perturbs shading normals
func (m *Material) NormalsAltered() bool {
	return m.BumpMap != nil || m.NormalMap != nil
}

// Clone returns a copy of the material with no owner, used when one set of
// parameters is applied to several primitives.
func (m *Material) Clone() *Material {
	c := *m
	c.OwnerID = 0
	return &c
}
