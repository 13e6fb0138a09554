package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Sphere represents a sphere in object space
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Intersect solves the ray/sphere quadratic and keeps the smallest root that
// lies beyond core.Epsilon.
func (s *Sphere) Intersect(ray core.Ray, hit *HitRecord) bool {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-halfB - sqrtD) / a
	if t <= core.Epsilon {
		t = (-halfB + sqrtD) / a
		if t <= core.Epsilon {
			return false
		}
	}

	hit.T = t
	hit.Point = ray.At(t)
	hit.U, hit.V = 0, 0
	hit.Shape = s
	return true
}

// Normal returns the outward normal at point
func (s *Sphere) Normal(point core.Vec3, hit *HitRecord) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// UV maps the point onto an equirectangular parametrization: +X is u = 0.5
// and the poles +Y and -Y are v = 1 and v = 0.
func (s *Sphere) UV(point core.Vec3, hit *HitRecord) core.Vec2 {
	n := s.Normal(point, hit)
	u := 0.5 + math.Atan2(n.Z, n.X)/(2*math.Pi)
	v := 0.5 + math.Asin(math.Max(-1, math.Min(1, n.Y)))/math.Pi
	return core.NewVec2(u, v)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}
