package output

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
)

func testFrame() *renderer.Frame {
	frame := renderer.NewFrame(4, 2)
	frame.Set(0, 0, core.NewVec3(0.5, 0, 1))
	frame.Set(1, 0, core.NewVec3(3, -1, 1))
	frame.Set(2, 0, core.NewVec3(math.NaN(), math.Inf(1), 0.2))
	return frame
}

func TestToImage(t *testing.T) {
	tests := []struct {
		name     string
		toneMap  ToneMap
		x        int
		expected [3]uint8
	}{
		{"clamp in range", Clamp, 0, [3]uint8{128, 0, 255}},
		{"clamp out of range", Clamp, 1, [3]uint8{255, 0, 255}},
		{"non-finite", Clamp, 2, [3]uint8{0, 0, 51}},
		{"reinhard", Reinhard, 1, [3]uint8{191, 0, 128}},
		{"default", nil, 1, [3]uint8{255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := ToImage(testFrame(), tt.toneMap)
			c := img.RGBAAt(tt.x, 0)
			got := [3]uint8{c.R, c.G, c.B}
			if got != tt.expected || c.A != 255 {
				t.Errorf("Expected %v, got %v (alpha %d)", tt.expected, got, c.A)
			}
		})
	}
}

func TestParseToneMap(t *testing.T) {
	for _, name := range []string{"", "clamp", "reinhard"} {
		if _, err := ParseToneMap(name); err != nil {
			t.Errorf("ParseToneMap(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseToneMap("filmic"); err == nil {
		t.Error("Expected an error for an unknown tone map")
	}
}

func TestPNGWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	img := ToImage(testFrame(), Clamp)

	w := NewPNGWriter(dir)
	if err := w.Consume(context.Background(), img, "frame"); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "frame.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	r, _, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 128 || b>>8 != 255 {
		t.Errorf("Unexpected decoded pixel r=%d b=%d", r>>8, b>>8)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          uint
		expected      image.Point
	}{
		{"landscape", 200, 100, 50, image.Pt(50, 25)},
		{"portrait", 100, 400, 100, image.Pt(25, 100)},
		{"square", 64, 64, 16, image.Pt(16, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb := Thumbnail(image.NewRGBA(image.Rect(0, 0, tt.width, tt.height)), tt.size)
			if got := thumb.Bounds().Size(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestThumbnailWriter(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))

	if err := NewThumbnailWriter(dir, 10).Consume(context.Background(), img, "frame"); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_thumb.png")); err != nil {
		t.Errorf("Expected thumbnail file: %v", err)
	}
	if err := NewThumbnailWriter(dir, 0).Consume(context.Background(), img, "frame"); err == nil {
		t.Error("Expected an error for zero size")
	}
}

// fakeS3 records PutObject calls
type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.input = input
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader(t *testing.T) {
	client := &fakeS3{}
	u := NewS3UploaderWithClient(client, "bucket", "renders/glass")
	img := ToImage(testFrame(), Clamp)

	if err := u.Consume(context.Background(), img, "render_1"); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}

	if got := aws.StringValue(client.input.Key); got != "renders/glass/render_1.png" {
		t.Errorf("Unexpected key %q", got)
	}
	if aws.StringValue(client.input.Bucket) != "bucket" || aws.StringValue(client.input.ContentType) != "image/png" {
		t.Errorf("Unexpected input %v", client.input)
	}
	if aws.Int64Value(client.input.ContentLength) != int64(len(client.body)) {
		t.Errorf("Content length %d does not match body %d", aws.Int64Value(client.input.ContentLength), len(client.body))
	}
	if _, err := png.Decode(bytes.NewReader(client.body)); err != nil {
		t.Errorf("Uploaded body is not a PNG: %v", err)
	}
}

func TestNewS3Uploader_RequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(S3Config{Region: "us-east-1"}); err == nil {
		t.Error("Expected an error without a bucket")
	}
}

func TestPublish_JoinsErrors(t *testing.T) {
	failure := errors.New("upload failed")
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	err := Publish(context.Background(), img, "frame",
		NewS3UploaderWithClient(&fakeS3{err: failure}, "bucket", ""),
		NewPNGWriter(dir),
	)
	if !errors.Is(err, failure) {
		t.Errorf("Expected the upload failure, got %v", err)
	}
	// Later consumers still run
	if _, err := os.Stat(filepath.Join(dir, "frame.png")); err != nil {
		t.Errorf("Expected PNG despite the failed upload: %v", err)
	}
}
