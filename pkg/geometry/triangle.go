package geometry

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices.
// Vertex normals and texture coordinates are optional; when present they are
// interpolated with the barycentric weights of the hit.
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Normals    *[3]core.Vec3 // Optional per-vertex normals
	UVs        *[3]core.Vec2 // Optional per-vertex texture coordinates
	normal     core.Vec3     // Cached face normal
	bbox       core.AABB     // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// Intersect tests the ray with the Möller-Trumbore algorithm. hit.U and
// hit.V receive the barycentric weights of V1 and V2.
func (t *Triangle) Intersect(ray core.Ray, hit *HitRecord) bool {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	dist := f * edge2.Dot(q)
	if dist <= core.Epsilon {
		return false
	}

	hit.T = dist
	hit.Point = ray.At(dist)
	hit.U, hit.V = u, v
	hit.Shape = t
	return true
}

// Normal returns the interpolated vertex normal when available, otherwise
// the face normal.
func (t *Triangle) Normal(point core.Vec3, hit *HitRecord) core.Vec3 {
	if t.Normals == nil {
		return t.normal
	}
	w := 1 - hit.U - hit.V
	n := t.Normals[0].Multiply(w).Add(t.Normals[1].Multiply(hit.U)).Add(t.Normals[2].Multiply(hit.V))
	if n.IsZero() {
		return t.normal
	}
	return n.Normalize()
}

// UV interpolates the vertex texture coordinates, or returns the raw
// barycentric weights when the triangle has none.
func (t *Triangle) UV(point core.Vec3, hit *HitRecord) core.Vec2 {
	if t.UVs == nil {
		return core.NewVec2(hit.U, hit.V)
	}
	w := 1 - hit.U - hit.V
	return core.NewVec2(
		t.UVs[0].X*w+t.UVs[1].X*hit.U+t.UVs[2].X*hit.V,
		t.UVs[0].Y*w+t.UVs[1].Y*hit.U+t.UVs[2].Y*hit.V,
	)
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// FaceNormal returns the geometric normal of the triangle
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.normal
}
