// Package sampling turns pixels into camera rays and averages the traced
// results.
package sampling

import (
	"math/rand"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Camera produces a primary ray for an image position given in pixels
type Camera interface {
	GetRay(x, y float64, width, height int) core.Ray
}

// Tracer returns the color seen along a ray
type Tracer interface {
	TraceRay(ray core.Ray, random *rand.Rand) core.Vec3
}

// PixelSampler produces the color of pixel (x, y)
type PixelSampler interface {
	SamplePixel(x, y, width, height int, camera Camera, tracer Tracer, random *rand.Rand) core.Vec3
	SamplesPerPixel() int
}

// Default returns the one-sample-per-pixel strategy
func Default() PixelSampler {
	return CenterSampler{}
}

// CenterSampler traces a single ray through the centre of each pixel
type CenterSampler struct{}

func (CenterSampler) SamplePixel(x, y, width, height int, camera Camera, tracer Tracer, random *rand.Rand) core.Vec3 {
	ray := camera.GetRay(float64(x)+0.5, float64(y)+0.5, width, height)
	return tracer.TraceRay(ray, random)
}

func (CenterSampler) SamplesPerPixel() int {
	return 1
}

// StratifiedSampler splits each pixel into an N x N grid and traces one
// jittered ray per cell.
type StratifiedSampler struct {
	N int
}

// NewStratifiedSampler creates a sampler with n x n samples per pixel
func NewStratifiedSampler(n int) *StratifiedSampler {
	if n < 1 {
		n = 1
	}
	return &StratifiedSampler{N: n}
}

func (s *StratifiedSampler) SamplePixel(x, y, width, height int, camera Camera, tracer Tracer, random *rand.Rand) core.Vec3 {
	n := s.N
	if n < 1 {
		n = 1
	}
	cell := 1.0 / float64(n)

	var color core.Vec3
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			px := float64(x) + (float64(i)+random.Float64())*cell
			py := float64(y) + (float64(j)+random.Float64())*cell
			color = color.Add(tracer.TraceRay(camera.GetRay(px, py, width, height), random))
		}
	}
	return color.Multiply(1 / float64(n*n))
}

func (s *StratifiedSampler) SamplesPerPixel() int {
	if s.N < 1 {
		return 1
	}
	return s.N * s.N
}
