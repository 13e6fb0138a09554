package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Texture provides spatially-varying values for materials. Colors come back
// as RGB; height maps use the luminance of the result.
type Texture interface {
	// Evaluate returns the value at surface parameters uv and point
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is a texture with one value everywhere
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture using nearest-neighbor filtering. UVs wrap;
// v = 0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1.0-v)*float64(t.Height)), t.Height-1)

	return t.Pixels[max(y, 0)*t.Width+max(x, 0)]
}

// Checker alternates two colors in a grid of Scale×Scale cells over UV space
type Checker struct {
	Even, Odd core.Vec3
	Scale     float64
}

// NewChecker creates a UV-space checker texture
func NewChecker(even, odd core.Vec3, scale float64) *Checker {
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

// Evaluate returns Even or Odd depending on the UV cell
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	cu := int(math.Floor(uv.X * c.Scale))
	cv := int(math.Floor(uv.Y * c.Scale))
	if (cu+cv)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// NewCheckerboardImage rasterizes a checkerboard into an ImageTexture
func NewCheckerboardImage(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}
