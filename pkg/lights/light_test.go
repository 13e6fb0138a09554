package lights

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// fixedOccluder reports the same visibility for every query
type fixedOccluder struct {
	visibility float64
	calls      int
	maxDist    float64
}

func (f *fixedOccluder) Visibility(ray core.Ray, maxDistance float64) float64 {
	f.calls++
	f.maxDist = maxDistance
	return f.visibility
}

func upSurface() Surface {
	return Surface{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		ToViewer: core.NewVec3(0, 1, 0),
		Diffuse:  core.NewVec3(1, 1, 1),
		Material: material.New(),
	}
}

func TestIlluminate(t *testing.T) {
	tests := []struct {
		name       string
		light      Light
		visibility float64
		expected   float64 // red channel
		shadowRay  bool
	}{
		{"point overhead", NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 2), 1, 2 / math.Pi, true},
		{"point occluded", NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 2), 0, 0, true},
		{"point below surface", NewPointLight(core.NewVec3(0, -5, 0), core.NewVec3(1, 1, 1), 2), 1, 0, false},
		{"directional from above", NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1), 1), 1, 1 / math.Pi, true},
		{"spot outside cone", NewSpotLight(core.NewVec3(5, 5, 0), core.NewVec3(10, 0, 0), core.NewVec3(1, 1, 1), 1, 20, 5), 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := upSurface()
			s.Material.SpecularFactor = 0
			occluder := &fixedOccluder{visibility: tt.visibility}

			color := Illuminate(tt.light, s, occluder)
			if math.Abs(color.X-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, color.X)
			}
			if (occluder.calls > 0) != tt.shadowRay {
				t.Errorf("Expected shadow ray=%t, got %d calls", tt.shadowRay, occluder.calls)
			}
		})
	}
}

func TestIlluminate_ShadowRayRange(t *testing.T) {
	s := upSurface()

	occluder := &fixedOccluder{visibility: 1}
	Illuminate(NewPointLight(core.NewVec3(0, 3, 4), core.NewVec3(1, 1, 1), 1), s, occluder)
	if math.Abs(occluder.maxDist-5) > 1e-9 {
		t.Errorf("Expected shadow range 5, got %f", occluder.maxDist)
	}

	Illuminate(NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1), 1), s, occluder)
	if !math.IsInf(occluder.maxDist, 1) {
		t.Errorf("Expected unbounded shadow range, got %f", occluder.maxDist)
	}
}

func TestPointLight_Falloff(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1), 8)
	if e := light.Sample(core.NewVec3(0, 0, 0)).Emission; math.Abs(e.X-8) > 1e-9 {
		t.Errorf("Expected no falloff by default, got %f", e.X)
	}

	light.Falloff = true
	if e := light.Sample(core.NewVec3(0, 0, 0)).Emission; math.Abs(e.X-2) > 1e-9 {
		t.Errorf("Expected inverse-square falloff 2, got %f", e.X)
	}
}

func TestSpotLight_Falloff(t *testing.T) {
	light := NewSpotLight(core.NewVec3(0, 10, 0), core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 1, 30, 10)

	tests := []struct {
		name  string
		point core.Vec3
		check func(float64) bool
	}{
		{"on axis", core.NewVec3(0, 0, 0), func(e float64) bool { return math.Abs(e-1) < 1e-9 }},
		{"inner cone", core.NewVec3(10*math.Tan(15*math.Pi/180), 0, 0), func(e float64) bool { return math.Abs(e-1) < 1e-9 }},
		{"soft edge", core.NewVec3(10*math.Tan(25*math.Pi/180), 0, 0), func(e float64) bool { return e > 0 && e < 1 }},
		{"outside", core.NewVec3(10*math.Tan(35*math.Pi/180), 0, 0), func(e float64) bool { return e == 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := light.Sample(tt.point).Emission.X
			if !tt.check(e) {
				t.Errorf("Unexpected emission %f", e)
			}
		})
	}
}

func TestSampleEmission(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	bounds := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	spot := NewSpotLight(core.NewVec3(0, 5, 0), core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 1, 20, 5)
	directional := NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1), 1)
	point := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 1)

	for i := 0; i < 200; i++ {
		sample := core.NewVec2(random.Float64(), random.Float64())

		e := spot.SampleEmission(bounds, sample)
		if e.Direction.Dot(spot.Direction) < math.Cos(20*math.Pi/180)-1e-9 {
			t.Fatalf("Spot photon outside cone: %v", e.Direction)
		}

		e = directional.SampleEmission(bounds, sample)
		if e.Direction != directional.Direction {
			t.Fatalf("Directional photon direction %v", e.Direction)
		}
		if e.Origin.Y <= bounds.Max.Y {
			t.Fatalf("Directional photon should start above the scene, got %v", e.Origin)
		}
		if math.Hypot(e.Origin.X, e.Origin.Z) > math.Sqrt(3)+1e-9 {
			t.Fatalf("Directional photon outside scene footprint: %v", e.Origin)
		}

		e = point.SampleEmission(bounds, sample)
		if math.Abs(e.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Point photon direction not unit: %v", e.Direction)
		}
	}
}

func TestPhotonBudget(t *testing.T) {
	strong := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 3)
	weak := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 1)

	budget := NewPhotonBudget([]Light{strong, weak}, 1000)
	if budget.Count(0) != 750 || budget.Count(1) != 250 {
		t.Errorf("Expected 750/250, got %d/%d", budget.Count(0), budget.Count(1))
	}
	if math.Abs(budget.Weight(0)-0.75) > 1e-9 {
		t.Errorf("Expected weight 0.75, got %f", budget.Weight(0))
	}
	if budget.Total() != 1000 {
		t.Errorf("Expected 1000 photons, got %d", budget.Total())
	}
	if !strings.Contains(budget.String(), "point") {
		t.Errorf("Unexpected description %q", budget.String())
	}
	if budget.Count(5) != 0 {
		t.Error("Out of range index should have no photons")
	}
}

func TestPhotonBudget_ZeroPower(t *testing.T) {
	dark := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 0)

	budget := NewPhotonBudget([]Light{dark}, 1000)
	if budget.TotalPower() != 0 {
		t.Errorf("Expected zero power, got %f", budget.TotalPower())
	}
	if budget.Total() != 0 {
		t.Errorf("Expected no photons, got %d", budget.Total())
	}

	if NewPhotonBudget(nil, 1000).Total() != 0 {
		t.Error("Expected no photons without lights")
	}
}

func TestLightFlux(t *testing.T) {
	bounds := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	white := core.NewVec3(1, 1, 1)

	tests := []struct {
		name     string
		light    Light
		expected float64
	}{
		{"point", NewPointLight(core.Vec3{}, white, 2), 8 * math.Pi},
		{"hemisphere spot", NewSpotLight(core.Vec3{}, core.NewVec3(0, -1, 0), white, 1, 90, 10), 2 * math.Pi},
		{"directional", NewDirectionalLight(core.NewVec3(0, -1, 0), white, 1), math.Pi * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.light.Flux(bounds)
			if math.Abs(got.X-tt.expected) > 1e-9 || got.X != got.Z {
				t.Errorf("Expected flux %f, got %v", tt.expected, got)
			}
		})
	}
}
