package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// bumpDelta is the UV step used to difference the bump map
const bumpDelta = 1.0 / 256.0

// PerturbNormal applies the normal map, or failing that the bump map, to the
// geometric normal n at surface parameters uv. Without either map n is
// returned unchanged.
func (m *Material) PerturbNormal(n core.Vec3, uv core.Vec2, point core.Vec3) core.Vec3 {
	tangent, bitangent := core.Basis(n)

	if m.NormalMap != nil {
		// Tangent-space normal encoded as RGB in [0, 1]
		c := m.NormalMap.Evaluate(uv, point)
		local := c.Multiply(2).Subtract(core.NewVec3(1, 1, 1))
		perturbed := tangent.Multiply(local.X).Add(bitangent.Multiply(local.Y)).Add(n.Multiply(local.Z))
		if perturbed.IsZero() {
			return n
		}
		return perturbed.Normalize()
	}

	if m.BumpMap != nil {
		h := m.BumpMap.Evaluate(uv, point).Luminance()
		hu := m.BumpMap.Evaluate(core.NewVec2(uv.X+bumpDelta, uv.Y), point).Luminance()
		hv := m.BumpMap.Evaluate(core.NewVec2(uv.X, uv.Y+bumpDelta), point).Luminance()

		du := (hu - h) * m.BumpStrength
		dv := (hv - h) * m.BumpStrength
		return n.Subtract(tangent.Multiply(du)).Subtract(bitangent.Multiply(dv)).Normalize()
	}

	return n
}
