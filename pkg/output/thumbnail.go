package output

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/nfnt/resize"
)

// ThumbnailWriter stores a downscaled copy as <Dir>/<name>_thumb.png. The
// longer edge is scaled to Size, keeping the aspect ratio.
type ThumbnailWriter struct {
	Dir  string
	Size uint
}

// NewThumbnailWriter creates a thumbnail writer
func NewThumbnailWriter(dir string, size uint) *ThumbnailWriter {
	return &ThumbnailWriter{Dir: dir, Size: size}
}

// Thumbnail scales img so its longer edge is size pixels
func Thumbnail(img image.Image, size uint) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() >= bounds.Dy() {
		return resize.Resize(size, 0, img, resize.Bilinear)
	}
	return resize.Resize(0, size, img, resize.Bilinear)
}

// Consume writes the thumbnail of img
func (w *ThumbnailWriter) Consume(ctx context.Context, img image.Image, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.Size == 0 {
		return fmt.Errorf("thumbnail size must be positive")
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := NewPNGWriter(w.Dir).Path(name + "_thumb")
	if err := writePNG(path, Thumbnail(img, w.Size)); err != nil {
		return err
	}
	logger.Infof("Saved thumbnail %s", path)
	return nil
}
