package material

import (
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	texture := NewImageTexture(2, 2, []core.Vec3{white, black, black, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), black},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"top left", core.NewVec2(0.1, 0.9), white},
		{"top right", core.NewVec2(0.9, 0.9), black},
		{"wraps positive", core.NewVec2(1.1, 1.9), white},
		{"wraps negative", core.NewVec2(-0.1, 0.1), white},
		{"upper edge clamps", core.NewVec2(0.999999, 0.0), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestChecker(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	c := NewChecker(red, blue, 4)

	if got := c.Evaluate(core.NewVec2(0.1, 0.1), core.Vec3{}); got != red {
		t.Errorf("Expected even cell red, got %v", got)
	}
	if got := c.Evaluate(core.NewVec2(0.3, 0.1), core.Vec3{}); got != blue {
		t.Errorf("Expected odd cell blue, got %v", got)
	}
	if got := c.Evaluate(core.NewVec2(0.3, 0.3), core.Vec3{}); got != red {
		t.Errorf("Expected diagonal cell red, got %v", got)
	}
}

func TestNewCheckerboardImage(t *testing.T) {
	a := core.NewVec3(1, 1, 1)
	b := core.NewVec3(0, 0, 0)
	img := NewCheckerboardImage(4, 4, 2, a, b)

	if img.Pixels[0] != a || img.Pixels[2] != b || img.Pixels[2*4] != b || img.Pixels[2*4+2] != a {
		t.Errorf("Unexpected checkerboard layout: %v", img.Pixels)
	}
}
