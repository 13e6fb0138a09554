package core

import (
	"math"
)

// Basis returns a tangent and bitangent completing an orthonormal frame
// around n. Directions close to ±Y use the X axis as tangent.
func Basis(n Vec3) (Vec3, Vec3) {
	var tangent Vec3
	if math.Abs(n.X) >= Epsilon || math.Abs(n.Z) >= Epsilon {
		tangent = n.Cross(NewVec3(0, 1, 0))
	} else {
		tangent = NewVec3(1, 0, 0)
	}
	bitangent := tangent.Cross(n)
	return tangent.Normalize(), bitangent.Normalize()
}

// SampleCosineHemisphere generates a cosine-weighted direction in the hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	z := math.Sqrt(1.0 - sample.Y)

	tangent, bitangent := Basis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(z))
}

// SampleCone samples a direction uniformly within a cone around direction
func SampleCone(direction Vec3, cosTotalWidth float64, sample Vec2) Vec3 {
	u, v := Basis(direction)

	cosTheta := 1.0 - sample.X*(1.0-cosTotalWidth)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)

	return u.Multiply(x).Add(v.Multiply(y)).Add(direction.Multiply(cosTheta))
}

// SampleOnUnitSphere generates a uniform direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}
