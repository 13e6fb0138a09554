package geometry

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// Object places a Shape in the world: it owns the material and the world
// transform, and is the public intersection entry point for the shape.
type Object struct {
	ID        int
	Shape     Shape
	Material  *material.Material
	transform core.Transform
}

// NewObject wraps shape with mat. A nil material gets the default material.
func NewObject(shape Shape, mat *material.Material) *Object {
	if mat == nil {
		mat = material.New()
	}
	return &Object{
		Shape:     shape,
		Material:  mat,
		transform: core.NewTransform(),
	}
}

// Translate moves the object by offset
func (o *Object) Translate(offset core.Vec3) *Object {
	o.transform.Translate(offset)
	return o
}

// Rotate rotates the object by Euler angles in degrees (X, then Y, then Z)
func (o *Object) Rotate(degrees core.Vec3) *Object {
	o.transform.Rotate(degrees)
	return o
}

// Scale scales the object along each axis
func (o *Object) Scale(factors core.Vec3) *Object {
	o.transform.Scale(factors)
	return o
}

// Transform returns the object's world transform
func (o *Object) Transform() core.Transform {
	return o.transform
}

// Emissive reports whether the object acts as a visible emitter
func (o *Object) Emissive() bool {
	return o.Material.Emissive
}

// Intersect transforms the world-space ray into object space and tests the
// shape. On success hit.Point is the world-space hit point; the distance is
// shared by both spaces since the object-space direction is not renormalized.
func (o *Object) Intersect(ray core.Ray, hit *HitRecord) bool {
	if !o.Shape.Intersect(o.transform.RayToObject(ray), hit) {
		return false
	}
	hit.Point = ray.At(hit.T)
	return true
}

// Normal returns the world-space shading normal for the hit cached in ray,
// including any bump or normal map perturbation.
func (o *Object) Normal(ray *Ray) core.Vec3 {
	local := o.transform.PointToObject(ray.Point)
	n := o.transform.NormalToWorld(o.Shape.Normal(local, &ray.HitRecord))

	if o.Material.NormalsAltered() {
		n = o.Material.PerturbNormal(n, o.Shape.UV(local, &ray.HitRecord), ray.Point)
	}
	return n
}

// UV returns texture coordinates for the hit cached in ray
func (o *Object) UV(ray *Ray) core.Vec2 {
	return o.Shape.UV(o.transform.PointToObject(ray.Point), &ray.HitRecord)
}

// BoundingBox returns the world-space bounds of a bounded shape. The second
// result is false for unbounded shapes such as planes.
func (o *Object) BoundingBox() (core.AABB, bool) {
	b, ok := o.Shape.(Bounded)
	if !ok {
		return core.AABB{}, false
	}
	box := b.BoundingBox()
	if !o.transform.Transformed() {
		return box, true
	}

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		c := box.Min
		if i&1 != 0 {
			c.X = box.Max.X
		}
		if i&2 != 0 {
			c.Y = box.Max.Y
		}
		if i&4 != 0 {
			c.Z = box.Max.Z
		}
		corners = append(corners, o.transform.PointToWorld(c))
	}
	return core.NewAABBFromPoints(corners...), true
}
