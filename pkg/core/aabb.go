package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Intersect clips [tMin, tMax] against the box using the slab method and
// returns the parametric interval the ray spends inside it.
func (aabb AABB) Intersect(ray Ray, tMin, tMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Parallel to this slab
		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return 0, 0, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, 0, false
		}
	}

	return tMin, tMax, true
}

// Hit reports whether the ray enters the box within [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, _, ok := aabb.Intersect(ray, tMin, tMax)
	return ok
}

// Contains reports whether point lies inside the box, allowing a tolerance of
// Epsilon on every face.
func (aabb AABB) Contains(point Vec3) bool {
	return PointInAABB(point, aabb.Min, aabb.Max)
}

// PointInAABB reports whether point lies within [min, max] on every axis.
func PointInAABB(point, min, max Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		p := point.Axis(axis)
		if p < min.Axis(axis)-Epsilon || p > max.Axis(axis)+Epsilon {
			return false
		}
	}
	return true
}

// IntervalsOverlap reports whether [aMin, aMax] and [bMin, bMax] intersect.
func IntervalsOverlap(aMin, aMax, bMin, bMax float64) bool {
	return aMin <= bMax && bMin <= aMax
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Octant returns child region i (0..7) of an 8-way midpoint split. Bit 0 of i
// selects the upper X half, bit 1 the upper Y half and bit 2 the upper Z half.
func (aabb AABB) Octant(i int) AABB {
	center := aabb.Center()
	child := AABB{Min: aabb.Min, Max: center}
	if i&1 != 0 {
		child.Min.X, child.Max.X = center.X, aabb.Max.X
	}
	if i&2 != 0 {
		child.Min.Y, child.Max.Y = center.Y, aabb.Max.Y
	}
	if i&4 != 0 {
		child.Min.Z, child.Max.Z = center.Z, aabb.Max.Z
	}
	return child
}

// IsValid returns true if min <= max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
