// Package output turns rendered frames into images and hands them to image
// consumers: local PNG files, thumbnails and S3 uploads.
package output

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
)

var logger = log.New("output")

// ToneMap maps an HDR color into [0, 1] per channel
type ToneMap func(c core.Vec3) core.Vec3

// Clamp cuts every channel to [0, 1]
func Clamp(c core.Vec3) core.Vec3 {
	return c.Clamp(0, 1)
}

// Reinhard compresses each channel with c / (1 + c)
func Reinhard(c core.Vec3) core.Vec3 {
	return core.NewVec3(c.X/(1+c.X), c.Y/(1+c.Y), c.Z/(1+c.Z)).Clamp(0, 1)
}

// ParseToneMap returns the tone map with the given name ("clamp" or "reinhard")
func ParseToneMap(name string) (ToneMap, error) {
	switch name {
	case "", "clamp":
		return Clamp, nil
	case "reinhard":
		return Reinhard, nil
	default:
		return nil, fmt.Errorf("unknown tone map %q", name)
	}
}

// ToImage converts a frame to an 8-bit image. Non-finite channels become 0.
func ToImage(frame *renderer.Frame, toneMap ToneMap) *image.RGBA {
	if toneMap == nil {
		toneMap = Clamp
	}

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := toneMap(finite(frame.At(x, y)))
			img.SetRGBA(x, y, color.RGBA{
				R: to8bit(c.X),
				G: to8bit(c.Y),
				B: to8bit(c.Z),
				A: 255,
			})
		}
	}
	return img
}

func finite(c core.Vec3) core.Vec3 {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}
	return core.NewVec3(fix(c.X), fix(c.Y), fix(c.Z))
}

func to8bit(v float64) uint8 {
	return uint8(math.Round(v * 255))
}

// Consumer receives a finished image under a name without extension
type Consumer interface {
	Consume(ctx context.Context, img image.Image, name string) error
}

// Publish hands img to every consumer. All consumers run even if one fails;
// the failures are joined.
func Publish(ctx context.Context, img image.Image, name string, consumers ...Consumer) error {
	var errs []error
	for _, c := range consumers {
		if err := c.Consume(ctx, img, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
