package geometry

import "github.com/df07/go-photon-raytracer/pkg/core"

// HitRecord is the result of a successful primitive intersection.
// U and V carry the surface parameters of the hit (barycentric weights for
// triangles) and Shape is the primitive that was actually hit, which for a
// mesh is the individual triangle rather than the mesh itself.
type HitRecord struct {
	T     float64
	Point core.Vec3
	U, V  float64
	Shape Shape
}

// Shape is implemented by every primitive. All methods work in object space;
// Object handles the world transform.
type Shape interface {
	// Intersect tests the ray and fills hit with the nearest intersection
	// whose distance is greater than core.Epsilon.
	Intersect(ray core.Ray, hit *HitRecord) bool

	// Normal returns the unit outward normal at an object-space point of a
	// previous hit.
	Normal(point core.Vec3, hit *HitRecord) core.Vec3

	// UV returns texture coordinates at an object-space point of a previous hit.
	UV(point core.Vec3, hit *HitRecord) core.Vec2
}

// Bounded is implemented by shapes with a finite object-space extent.
type Bounded interface {
	BoundingBox() core.AABB
}

// Ray is a ray together with the cache filled in by the last successful
// intersection test. A Ray belongs to a single trace call chain.
type Ray struct {
	core.Ray
	HitRecord
	Object *Object // object owning the hit primitive
}

// NewRay creates a ray with an empty hit cache.
func NewRay(origin, direction core.Vec3) *Ray {
	return &Ray{Ray: core.NewRay(origin, direction)}
}

// Hit reports whether the cache holds an intersection.
func (r *Ray) Hit() bool {
	return r.Object != nil
}

// Record stores a hit produced by obj in the cache.
func (r *Ray) Record(obj *Object, hit HitRecord) {
	r.HitRecord = hit
	r.Object = obj
}

// Reset clears the cache so the ray can be traced again.
func (r *Ray) Reset() {
	r.HitRecord = HitRecord{}
	r.Object = nil
}
