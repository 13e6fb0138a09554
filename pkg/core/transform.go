package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform holds an object's world matrix together with its inverse and the
// normal matrix (inverse transpose). The zero value is the identity.
type Transform struct {
	world       mgl64.Mat4
	inverse     mgl64.Mat4
	normal      mgl64.Mat4
	transformed bool
}

// NewTransform returns the identity transform
func NewTransform() Transform {
	return Transform{
		world:   mgl64.Ident4(),
		inverse: mgl64.Ident4(),
		normal:  mgl64.Ident4(),
	}
}

// Translate appends a translation to the transform
func (t *Transform) Translate(offset Vec3) {
	t.apply(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
}

// Rotate appends a rotation given as Euler angles in degrees, applied about X,
// then Y, then Z.
func (t *Transform) Rotate(degrees Vec3) {
	rx := mgl64.HomogRotate3DX(mgl64.DegToRad(degrees.X))
	ry := mgl64.HomogRotate3DY(mgl64.DegToRad(degrees.Y))
	rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(degrees.Z))
	t.apply(rz.Mul4(ry).Mul4(rx))
}

// Scale appends a (possibly non-uniform) scale to the transform
func (t *Transform) Scale(factors Vec3) {
	t.apply(mgl64.Scale3D(factors.X, factors.Y, factors.Z))
}

func (t *Transform) apply(m mgl64.Mat4) {
	if !t.transformed {
		t.world = mgl64.Ident4()
	}
	t.world = m.Mul4(t.world)
	t.inverse = t.world.Inv()
	t.normal = t.inverse.Transpose()
	t.transformed = true
}

// Transformed reports whether any operation has been applied
func (t Transform) Transformed() bool {
	return t.transformed
}

// World returns the object-to-world matrix
func (t Transform) World() mgl64.Mat4 {
	if !t.transformed {
		return mgl64.Ident4()
	}
	return t.world
}

// Inverse returns the world-to-object matrix
func (t Transform) Inverse() mgl64.Mat4 {
	if !t.transformed {
		return mgl64.Ident4()
	}
	return t.inverse
}

// PointToObject maps a world-space point into object space
func (t Transform) PointToObject(p Vec3) Vec3 {
	if !t.transformed {
		return p
	}
	return fromMgl(mgl64.TransformCoordinate(toMgl(p), t.inverse))
}

// PointToWorld maps an object-space point into world space
func (t Transform) PointToWorld(p Vec3) Vec3 {
	if !t.transformed {
		return p
	}
	return fromMgl(mgl64.TransformCoordinate(toMgl(p), t.world))
}

// DirectionToObject maps a world-space direction into object space. The
// result is not renormalized so ray parameters stay comparable between spaces.
func (t Transform) DirectionToObject(d Vec3) Vec3 {
	if !t.transformed {
		return d
	}
	return fromMgl(mgl64.TransformNormal(toMgl(d), t.inverse))
}

// NormalToWorld maps an object-space normal through the normal matrix and
// normalizes it.
func (t Transform) NormalToWorld(n Vec3) Vec3 {
	if !t.transformed {
		return n.Normalize()
	}
	return fromMgl(mgl64.TransformNormal(toMgl(n), t.normal)).Normalize()
}

// RayToObject maps a world-space ray into object space
func (t Transform) RayToObject(r Ray) Ray {
	if !t.transformed {
		return r
	}
	return Ray{Origin: t.PointToObject(r.Origin), Direction: t.DirectionToObject(r.Direction)}
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
