// Package integrator computes the color seen through each pixel by
// recursive Whitted-style ray tracing, optionally adding indirect light
// gathered from the scene's photon map.
package integrator

import (
	"math/rand"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/sampling"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	sampling.Tracer

	// TracePixel returns the gamma-corrected HDR color of pixel (x, y).
	// random must not be shared with concurrent callers.
	TracePixel(x, y int, random *rand.Rand) core.Vec3
}
