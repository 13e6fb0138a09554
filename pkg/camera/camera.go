package camera

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// DefaultFOV is the vertical field of view in degrees
const DefaultFOV = 60.0

// Camera is a pinhole camera producing primary rays
type Camera struct {
	Position core.Vec3
	Forward  core.Vec3
	Up       core.Vec3
	FOV      float64 // Vertical field of view in degrees

	right, up  core.Vec3
	tanHalfFOV float64
}

// New creates a camera at position looking along direction
func New(position, direction, up core.Vec3, fov float64) *Camera {
	c := &Camera{
		Position: position,
		Forward:  direction.Normalize(),
		Up:       up.Normalize(),
		FOV:      fov,
	}
	c.update()
	return c
}

// NewLookAt creates a camera at position looking toward target
func NewLookAt(position, target, up core.Vec3, fov float64) *Camera {
	return New(position, target.Subtract(position), up, fov)
}

// Default returns a camera at the origin looking down +Z with +Y up
func Default() *Camera {
	return New(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), DefaultFOV)
}

func (c *Camera) update() {
	c.right = c.Forward.Cross(c.Up).Normalize()
	if c.right.IsZero() {
		// Up parallel to the view direction
		c.right, _ = core.Basis(c.Forward)
	}
	c.up = c.right.Cross(c.Forward).Normalize()
	c.tanHalfFOV = math.Tan(c.FOV * math.Pi / 360.0)
}

// GetRay returns the primary ray through image position (x, y) of a
// width x height image. Coordinates are in pixels with (0, 0) at the top-left
// corner, so the centre of pixel (i, j) is (i+0.5, j+0.5).
func (c *Camera) GetRay(x, y float64, width, height int) core.Ray {
	aspect := float64(width) / float64(height)
	sx := (2*x/float64(width) - 1) * aspect * c.tanHalfFOV
	sy := (1 - 2*y/float64(height)) * c.tanHalfFOV

	direction := c.Forward.Add(c.right.Multiply(sx)).Add(c.up.Multiply(sy)).Normalize()
	return core.NewRay(c.Position, direction)
}
