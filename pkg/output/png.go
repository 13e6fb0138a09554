package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGWriter stores images as <Dir>/<name>.png
type PNGWriter struct {
	Dir string
}

// NewPNGWriter creates a writer for the given directory
func NewPNGWriter(dir string) *PNGWriter {
	return &PNGWriter{Dir: dir}
}

// Path returns the file an image with the given name is written to
func (w *PNGWriter) Path(name string) string {
	return filepath.Join(w.Dir, name+".png")
}

// Consume encodes img and writes it to disk, creating Dir if needed
func (w *PNGWriter) Consume(ctx context.Context, img image.Image, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := w.Path(name)
	if err := writePNG(path, img); err != nil {
		return err
	}
	logger.Infof("Saved %s", path)
	return nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// EncodePNG returns the PNG encoding of img
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
