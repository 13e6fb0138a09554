package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-photon-raytracer/pkg/integrator"
)

// TileRenderer renders the pixels of a tile with an integrator
type TileRenderer struct {
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(integ integrator.Integrator) *TileRenderer {
	return &TileRenderer{integrator: integ}
}

// RenderTileBounds renders pixels within bounds into frame. Tiles never
// overlap, so concurrent calls on distinct tiles may share the frame.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, frame *Frame, random *rand.Rand) TileStats {
	stats := TileStats{Pixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color := tr.integrator.TracePixel(x, y, random)
			frame.Set(x, y, color)
			stats.add(color.Luminance())
		}
	}
	return stats
}
