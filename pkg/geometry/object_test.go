package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

func TestObject_IntersectTransformed(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(o *Object)
		origin         core.Vec3
		direction      core.Vec3
		expectedT      float64
		expectedPoint  core.Vec3
		expectedNormal core.Vec3
	}{
		{
			name:           "identity",
			setup:          func(o *Object) {},
			origin:         core.NewVec3(0, 0, -5),
			direction:      core.NewVec3(0, 0, 1),
			expectedT:      4,
			expectedPoint:  core.NewVec3(0, 0, -1),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "translated",
			setup:          func(o *Object) { o.Translate(core.NewVec3(3, 0, 0)) },
			origin:         core.NewVec3(3, 0, -5),
			direction:      core.NewVec3(0, 0, 1),
			expectedT:      4,
			expectedPoint:  core.NewVec3(3, 0, -1),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "non-uniform scale",
			setup:          func(o *Object) { o.Scale(core.NewVec3(1, 1, 2)) },
			origin:         core.NewVec3(0, 0, -5),
			direction:      core.NewVec3(0, 0, 1),
			expectedT:      3,
			expectedPoint:  core.NewVec3(0, 0, -2),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "scaled along x viewed from x",
			setup:          func(o *Object) { o.Scale(core.NewVec3(2, 1, 1)) },
			origin:         core.NewVec3(5, 0, 0),
			direction:      core.NewVec3(-1, 0, 0),
			expectedT:      3,
			expectedPoint:  core.NewVec3(2, 0, 0),
			expectedNormal: core.NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := NewObject(NewSphere(core.NewVec3(0, 0, 0), 1), nil)
			tt.setup(obj)

			ray := NewRay(tt.origin, tt.direction)
			var hit HitRecord
			if !obj.Intersect(ray.Ray, &hit) {
				t.Fatal("Expected hit")
			}
			ray.Record(obj, hit)

			if math.Abs(ray.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, ray.T)
			}
			if !vecClose(ray.Point, tt.expectedPoint, 1e-9) {
				t.Errorf("Expected point %v, got %v", tt.expectedPoint, ray.Point)
			}
			n := obj.Normal(ray)
			if !vecClose(n, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, n)
			}
		})
	}
}

func TestObject_NormalUnderNonUniformScale(t *testing.T) {
	// An ellipsoid stretched along X: the normal at a 45 degree object-space
	// point tilts toward Y, which only the inverse-transpose gets right.
	obj := NewObject(NewSphere(core.NewVec3(0, 0, 0), 1), nil)
	obj.Scale(core.NewVec3(2, 1, 1))

	s := math.Sqrt(0.5)
	ray := NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	ray.Record(obj, HitRecord{Point: core.NewVec3(2*s, s, 0), Shape: obj.Shape})

	expected := core.NewVec3(0.5, 1, 0).Normalize()
	if n := obj.Normal(ray); !vecClose(n, expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, n)
	}
}

func TestObject_BoundingBox(t *testing.T) {
	obj := NewObject(NewSphere(core.NewVec3(0, 0, 0), 1), nil)
	obj.Scale(core.NewVec3(2, 1, 1)).Translate(core.NewVec3(0, 5, 0))

	box, ok := obj.BoundingBox()
	if !ok {
		t.Fatal("Expected sphere to be bounded")
	}
	if !vecClose(box.Min, core.NewVec3(-2, 4, -1), 1e-9) || !vecClose(box.Max, core.NewVec3(2, 6, 1), 1e-9) {
		t.Errorf("Unexpected bounds %v", box)
	}

	plane := NewObject(NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), nil)
	if _, ok := plane.BoundingBox(); ok {
		t.Error("Plane should be unbounded")
	}
}

func TestObject_DefaultMaterial(t *testing.T) {
	obj := NewObject(NewSphere(core.NewVec3(0, 0, 0), 1), nil)
	if obj.Material == nil {
		t.Fatal("Expected default material")
	}
	if obj.Emissive() {
		t.Error("Default material should not be emissive")
	}

	lamp := NewObject(NewSphere(core.NewVec3(0, 0, 0), 1), material.NewEmissive(core.NewVec3(1, 1, 1)))
	if !lamp.Emissive() {
		t.Error("Expected emissive object")
	}
}

func TestRay_Cache(t *testing.T) {
	ray := NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if ray.Hit() {
		t.Fatal("New ray should have an empty cache")
	}

	obj := NewObject(NewSphere(core.NewVec3(0, 0, 5), 1), nil)
	var hit HitRecord
	if !obj.Intersect(ray.Ray, &hit) {
		t.Fatal("Expected hit")
	}
	ray.Record(obj, hit)
	if !ray.Hit() || ray.Object != obj || ray.Shape != obj.Shape {
		t.Error("Cache not populated")
	}

	ray.Reset()
	if ray.Hit() || ray.T != 0 {
		t.Error("Reset should clear the cache")
	}
}
