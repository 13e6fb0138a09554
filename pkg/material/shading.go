package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Shade returns the reflected fraction of light arriving from direction
// toLight (unit, pointing away from the surface) as seen from direction
// toViewer. The diffuse lobe is Oren–Nayar, which reduces to Lambertian at
// zero roughness; the specular lobe is Phong. diffuse is the (possibly
// textured) diffuse color at the shading point.
func (m *Material) Shade(toViewer, normal, toLight, diffuse core.Vec3) core.Vec3 {
	color := core.Vec3{}

	if m.DiffuseFactor > 0 {
		color = color.Add(m.orenNayar(toViewer, normal, toLight, diffuse))
	}

	if m.SpecularFactor > 0 {
		// Mirror of the light direction about the normal
		r := normal.Multiply(2 * normal.Dot(toLight)).Subtract(toLight).Normalize()
		spec := math.Pow(math.Max(0, toViewer.Dot(r)), m.Shininess)
		color = color.Add(m.SpecularColor.Multiply(m.SpecularFactor * spec))
	}

	return color
}

func (m *Material) orenNayar(v, n, l, diffuse core.Vec3) core.Vec3 {
	cosL := l.Dot(n)
	if cosL <= 0 {
		return core.Vec3{}
	}

	r2 := m.Roughness * m.Roughness
	a := 1.0 - 0.5*(r2/(r2+0.33))
	b := 0.45 * (r2 / (r2 + 0.09))

	term := a
	if b > 0 {
		cosV := v.Dot(n)
		sinV := math.Sqrt(math.Max(0, 1-cosV*cosV))
		sinL := math.Sqrt(math.Max(0, 1-cosL*cosL))

		// alpha = max(thetaV, thetaL), beta = min(thetaV, thetaL)
		var sinAlpha, tanBeta float64
		if cosV <= cosL {
			sinAlpha = sinV
			tanBeta = sinL / math.Max(cosL, 1e-6)
		} else {
			sinAlpha = sinL
			tanBeta = sinV / math.Max(cosV, 1e-6)
		}

		vPlane := v.Subtract(n.Multiply(cosV)).Normalize()
		lPlane := l.Subtract(n.Multiply(cosL)).Normalize()
		cosPhi := math.Max(0, vPlane.Dot(lPlane))

		term += b * cosPhi * sinAlpha * tanBeta
	}

	return diffuse.Multiply(m.DiffuseFactor * cosL * term / math.Pi)
}
