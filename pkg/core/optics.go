package core

import "math"

// Refract bends the unit direction incident through a surface with outward
// normal n separating air (index 1) from a medium of index ior. The side is
// taken from the sign of incident·n. cos1 and cos2 are the cosines of the
// incident and transmitted angles. tir is set when the discriminant under
// the square root goes negative; dir is then undefined.
func Refract(incident, n Vec3, ior float64) (dir Vec3, cos1, cos2 float64, tir bool) {
	if incident.Dot(n) < 0 {
		// Entering the medium
		eta := 1.0 / ior
		cos1 = -incident.Dot(n)
		cs2 := 1.0 - eta*eta*(1.0-cos1*cos1)
		if cs2 < 0 {
			return Vec3{}, cos1, 0, true
		}
		dir = incident.Multiply(eta).Add(n.Multiply(eta*cos1 - math.Sqrt(cs2))).Normalize()
		return dir, cos1, -n.Dot(dir), false
	}

	// Leaving the medium
	eta := ior
	cos1 = incident.Dot(n)
	cs2 := 1.0 - eta*eta*(1.0-cos1*cos1)
	if cs2 < 0 {
		return Vec3{}, cos1, 0, true
	}
	dir = incident.Multiply(eta).Subtract(n.Multiply(eta*cos1 - math.Sqrt(cs2))).Normalize()
	return dir, cos1, n.Dot(dir), false
}

// Fresnel returns the unpolarized reflectance, the mean of the squared
// parallel and perpendicular amplitude ratios, for a boundary between air
// and index ior. The result is clamped to [0, 1]; a vanishing denominator
// counts as total reflection for that polarization.
func Fresnel(cos1, cos2, ior float64) float64 {
	const n = 1.0
	nt := ior

	parallel := ratio(nt*cos1-n*cos2, nt*cos1+n*cos2)
	perp := ratio(n*cos1-nt*cos2, n*cos1+nt*cos2)

	r := 0.5 * (parallel*parallel + perp*perp)
	return math.Max(0, math.Min(1, r))
}

func ratio(num, den float64) float64 {
	if math.Abs(den) < 1e-12 {
		return 1
	}
	return num / den
}
