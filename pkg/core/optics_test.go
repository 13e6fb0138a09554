package core

import (
	"math"
	"testing"
)

func TestRefract_Snell(t *testing.T) {
	n := NewVec3(0, 1, 0)

	tests := []struct {
		name     string
		angle    float64 // degrees from the normal
		ior      float64
		entering bool
		tir      bool
	}{
		{"normal incidence entering", 0, 1.5, true, false},
		{"oblique entering", 30, 1.5, true, false},
		{"grazing entering", 89, 1.5, true, false},
		{"normal incidence leaving", 0, 1.5, false, false},
		{"below critical angle leaving", 30, 1.5, false, false},
		{"above critical angle leaving", 60, 1.5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rad := tt.angle * math.Pi / 180
			incident := NewVec3(math.Sin(rad), -math.Cos(rad), 0)
			if !tt.entering {
				incident = NewVec3(math.Sin(rad), math.Cos(rad), 0)
			}

			dir, cos1, cos2, tir := Refract(incident, n, tt.ior)
			if tir != tt.tir {
				t.Fatalf("Expected tir=%v, got %v", tt.tir, tir)
			}
			if math.Abs(cos1-math.Cos(rad)) > 1e-9 {
				t.Errorf("Expected cos1 %f, got %f", math.Cos(rad), cos1)
			}
			if tir {
				return
			}

			// Snell's law: n1 sin1 = n2 sin2
			n1, n2 := 1.0, tt.ior
			if !tt.entering {
				n1, n2 = tt.ior, 1.0
			}
			sin2 := math.Sqrt(math.Max(0, 1-cos2*cos2))
			if math.Abs(n1*math.Sin(rad)-n2*sin2) > 1e-9 {
				t.Errorf("Snell's law violated: %f vs %f", n1*math.Sin(rad), n2*sin2)
			}
			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Errorf("Expected unit direction, got %v", dir)
			}
			// Transmitted ray continues through the surface
			if dir.Dot(n)*incident.Dot(n) <= 0 {
				t.Errorf("Transmitted direction %v turned back", dir)
			}
		})
	}
}

func TestRefract_CriticalAngle(t *testing.T) {
	n := NewVec3(0, 0, 1)
	critical := math.Asin(1 / 1.5)

	for _, offset := range []float64{-0.01, 0.01} {
		rad := critical + offset
		incident := NewVec3(math.Sin(rad), 0, math.Cos(rad))
		_, _, _, tir := Refract(incident, n, 1.5)
		if tir != (offset > 0) {
			t.Errorf("Angle %f: expected tir=%v, got %v", rad, offset > 0, tir)
		}
	}
}

func TestFresnel(t *testing.T) {
	// Normal incidence reflectance for glass is ((n-1)/(n+1))^2
	if got := Fresnel(1, 1, 1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", got)
	}

	// Matched index transmits everything
	if got := Fresnel(0.7, 0.7, 1); got != 0 {
		t.Errorf("Expected 0 for matched index, got %f", got)
	}

	// Degenerate denominators stay finite
	if got := Fresnel(0, 0, 1.5); got != 1 {
		t.Errorf("Expected full reflection for vanishing denominators, got %f", got)
	}

	n := NewVec3(0, 1, 0)
	for deg := 0.0; deg < 90; deg += 5 {
		rad := deg * math.Pi / 180
		incident := NewVec3(math.Sin(rad), -math.Cos(rad), 0)
		_, cos1, cos2, tir := Refract(incident, n, 1.5)
		if tir {
			t.Fatalf("Unexpected tir entering at %f degrees", deg)
		}
		r := Fresnel(cos1, cos2, 1.5)
		if r < 0 || r > 1 || math.IsNaN(r) {
			t.Errorf("Reflectance %f out of range at %f degrees", r, deg)
		}
	}
}
