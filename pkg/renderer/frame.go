package renderer

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Frame holds one HDR color per pixel. Colors are not clamped; mapping them
// to a displayable range is up to the image consumer.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, (0, 0) at the top-left
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color of pixel (x, y)
func (f *Frame) Set(x, y int, color core.Vec3) {
	f.Pixels[y*f.Width+x] = color
}
