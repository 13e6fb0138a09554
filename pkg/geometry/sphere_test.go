package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	var hit HitRecord
	if sphere.Intersect(ray, &hit) {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_SmallestRootAboveEpsilon(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{"outside takes near root", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), true, 2.0},
		{"inside takes far root", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), true, 1.0},
		{"on surface skips self hit", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), true, 2.0},
		{"unnormalized direction", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -2), true, 1.0},
		{"both roots behind", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 1), false, 0},
		{"leaving from surface", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ok := sphere.Intersect(core.NewRay(tt.origin, tt.direction), &hit)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t (t=%f)", tt.expectHit, ok, hit.T)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.T <= core.Epsilon {
				t.Errorf("t=%f is not above epsilon", hit.T)
			}
			if hit.Shape != Shape(sphere) {
				t.Error("Expected hit shape to be the sphere")
			}
		})
	}
}

func TestSphere_UV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name  string
		point core.Vec3
		u, v  float64
	}{
		{"+X", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+Y pole", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"-Y pole", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"+Z", core.NewVec3(0, 0, 1), 0.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphere.UV(tt.point, &HitRecord{})
			if math.Abs(uv.Y-tt.v) > 1e-9 {
				t.Errorf("Expected v=%f, got %f", tt.v, uv.Y)
			}
			// u is undefined at the poles
			if tt.point.Y == 0 && math.Abs(uv.X-tt.u) > 1e-9 {
				t.Errorf("Expected u=%f, got %f", tt.u, uv.X)
			}
		})
	}
}

func TestSphere_Normal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 0, 0), 2.0)
	n := sphere.Normal(core.NewVec3(1, 2, 0), &HitRecord{})
	if !vecClose(n, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected (0,1,0), got %v", n)
	}
}

func TestPlane_Intersect(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))

	var hit HitRecord
	if !plane.Intersect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), &hit) {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}

	if plane.Intersect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)), &hit) {
		t.Error("Parallel ray should miss")
	}
	if plane.Intersect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)), &hit) {
		t.Error("Ray pointing away should miss")
	}
}

func TestQuad_Intersect(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2))

	tests := []struct {
		name   string
		origin core.Vec3
		hit    bool
		u, v   float64
	}{
		{"centre", core.NewVec3(1, 1, 1), true, 0.5, 0.5},
		{"corner", core.NewVec3(0.5, 1, 1.5), true, 0.25, 0.75},
		{"outside", core.NewVec3(3, 1, 1), false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ok := quad.Intersect(core.NewRay(tt.origin, core.NewVec3(0, -1, 0)), &hit)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%t, got %t", tt.hit, ok)
			}
			if ok && (math.Abs(hit.U-tt.u) > 1e-9 || math.Abs(hit.V-tt.v) > 1e-9) {
				t.Errorf("Expected uv (%f,%f), got (%f,%f)", tt.u, tt.v, hit.U, hit.V)
			}
		})
	}
}
