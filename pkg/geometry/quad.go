package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	Edge1  core.Vec3 // First edge vector
	Edge2  core.Vec3 // Second edge vector
	n      core.Vec3 // Unit normal (Edge1 x Edge2)
	d      float64   // Plane equation constant: n . x = d
	w      core.Vec3 // Cached vector for planar coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, edge1, edge2 core.Vec3) *Quad {
	cross := edge1.Cross(edge2)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		Edge1:  edge1,
		Edge2:  edge2,
		n:      normal,
		d:      normal.Dot(corner),
		w:      cross.Multiply(1.0 / cross.Dot(cross)),
	}
}

// Intersect tests if a ray intersects with the quad. hit.U and hit.V are the
// hit's coordinates along Edge1 and Edge2 in [0, 1].
func (q *Quad) Intersect(ray core.Ray, hit *HitRecord) bool {
	denominator := ray.Direction.Dot(q.n)
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.d - ray.Origin.Dot(q.n)) / denominator
	if t <= core.Epsilon {
		return false
	}

	point := ray.At(t)
	planar := point.Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.Edge2))
	beta := q.w.Dot(q.Edge1.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	hit.T = t
	hit.Point = point
	hit.U, hit.V = alpha, beta
	hit.Shape = q
	return true
}

// Normal returns the quad normal
func (q *Quad) Normal(point core.Vec3, hit *HitRecord) core.Vec3 {
	return q.n
}

// UV returns the planar coordinates of the hit
func (q *Quad) UV(point core.Vec3, hit *HitRecord) core.Vec2 {
	return core.NewVec2(hit.U, hit.V)
}

// BoundingBox returns the bounds of the four corners, padded on flat axes
func (q *Quad) BoundingBox() core.AABB {
	box := core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.Edge1),
		q.Corner.Add(q.Edge2),
		q.Corner.Add(q.Edge1).Add(q.Edge2),
	)
	return box.Expand(core.Epsilon)
}
