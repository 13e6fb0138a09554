package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point core.Vec3 // A point on the plane
	N     core.Vec3 // Unit normal

	tangent, bitangent core.Vec3
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	tangent, bitangent := core.Basis(n)
	return &Plane{
		Point:     point,
		N:         n,
		tangent:   tangent,
		bitangent: bitangent,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray, hit *HitRecord) bool {
	denominator := ray.Direction.Dot(p.N)

	// Parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.N) / denominator
	if t <= core.Epsilon {
		return false
	}

	hit.T = t
	hit.Point = ray.At(t)
	hit.U, hit.V = 0, 0
	hit.Shape = p
	return true
}

// Normal returns the plane normal; it does not flip toward the viewer
func (p *Plane) Normal(point core.Vec3, hit *HitRecord) core.Vec3 {
	return p.N
}

// UV returns the point's coordinates in the plane's tangent frame. Textures
// wrap, so the unbounded values tile.
func (p *Plane) UV(point core.Vec3, hit *HitRecord) core.Vec2 {
	d := point.Subtract(p.Point)
	return core.NewVec2(d.Dot(p.tangent), d.Dot(p.bitangent))
}
