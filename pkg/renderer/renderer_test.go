package renderer

import (
	"context"
	"errors"
	"image"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/sampling"
	"github.com/df07/go-photon-raytracer/pkg/scene"
)

// MockIntegrator colors each pixel by its coordinates
type MockIntegrator struct {
	calls atomic.Int64
}

func (m *MockIntegrator) TraceRay(ray core.Ray, random *rand.Rand) core.Vec3 {
	return core.Vec3{}
}

func (m *MockIntegrator) TracePixel(x, y int, random *rand.Rand) core.Vec3 {
	m.calls.Add(1)
	return core.NewVec3(float64(x), float64(y), 1)
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"partial tiles", 70, 33, 32, 6},
		{"single tile", 10, 10, 32, 1},
		{"default size", 64, 32, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 0)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Tiles must cover every pixel exactly once
			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, c := range covered {
				if c != 1 {
					t.Fatalf("Pixel %d covered %d times", i, c)
				}
			}
		})
	}
}

func TestNewTile_DeterministicRandom(t *testing.T) {
	a := NewTile(3, image.Rect(0, 0, 1, 1), 10)
	b := NewTile(3, image.Rect(0, 0, 1, 1), 10)
	c := NewTile(4, image.Rect(0, 0, 1, 1), 10)

	va, vb, vc := a.Random.Float64(), b.Random.Float64(), c.Random.Float64()
	if va != vb {
		t.Error("Expected equal sequences for equal tile and seed")
	}
	if va == vc {
		t.Error("Expected different sequences for different tiles")
	}
}

func TestTileRenderer_RenderTileBounds(t *testing.T) {
	mock := &MockIntegrator{}
	frame := NewFrame(8, 8)
	bounds := image.Rect(2, 3, 6, 5)

	stats := NewTileRenderer(mock).RenderTileBounds(bounds, frame, rand.New(rand.NewSource(1)))

	if stats.Pixels != 8 || mock.calls.Load() != 8 {
		t.Errorf("Expected 8 pixels traced, got %d (%d calls)", stats.Pixels, mock.calls.Load())
	}
	if got := frame.At(5, 4); got != core.NewVec3(5, 4, 1) {
		t.Errorf("Expected pixel (5,4) to be written, got %v", got)
	}
	if got := frame.At(1, 1); !got.IsZero() {
		t.Errorf("Expected pixel outside the tile to stay black, got %v", got)
	}
	if stats.MaxLuminance != core.NewVec3(5, 4, 1).Luminance() {
		t.Errorf("Unexpected max luminance %f", stats.MaxLuminance)
	}
}

func TestTileStats_NonFinite(t *testing.T) {
	var stats TileStats
	stats.add(0.5)
	stats.add(core.NewVec3(1, 0, 0).Multiply(1e308).Multiply(10).Luminance())
	if stats.NonFinite != 1 || stats.Luminance != 0.5 {
		t.Errorf("Expected one non-finite pixel and sum 0.5, got %+v", stats)
	}
}

func TestWorkerPool(t *testing.T) {
	mock := &MockIntegrator{}
	frame := NewFrame(40, 40)
	tiles := NewTileGrid(40, 40, 16, 0)

	pool := NewWorkerPool(mock, 3, len(tiles))
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start(context.Background())
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Frame: frame})
	}

	seen := make(map[int]bool)
	for range tiles {
		result, ok := pool.GetResult()
		if !ok || result.Error != nil {
			t.Fatalf("Unexpected result %+v", result)
		}
		seen[result.TaskID] = true
	}
	pool.Stop()

	if len(seen) != len(tiles) {
		t.Errorf("Expected %d distinct results, got %d", len(tiles), len(seen))
	}
	if mock.calls.Load() != 1600 {
		t.Errorf("Expected 1600 traced pixels, got %d", mock.calls.Load())
	}
}

func newTestScene(t *testing.T, width, height int) *scene.Scene {
	t.Helper()
	config := scene.DefaultConfig()
	config.Width = width
	config.Height = height
	config.Ambient = 0.1
	config.MaxDepth = 3
	config.GlossyReflectSamples = 2
	config.Background = core.NewVec3(0.2, 0.3, 0.4)
	config.Sampler = sampling.NewStratifiedSampler(2)

	glossy := material.NewDiffuse(core.NewVec3(0.4, 0.4, 0.4))
	glossy.Reflectivity = 0.5
	glossy.Glossiness = 0.3

	s := scene.New(config)
	err := s.Add(
		geometry.NewObject(geometry.NewSphere(core.NewVec3(0, 0, 5), 1.5), glossy),
		geometry.NewObject(geometry.NewPlane(core.NewVec3(0, -1.5, 0), core.NewVec3(0, 1, 0)), nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddLight(lights.NewPointLight(core.NewVec3(3, 5, 0), core.NewVec3(1, 1, 1), 1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Setup(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderer_Render(t *testing.T) {
	s := newTestScene(t, 24, 18)

	var completed int
	r := New(s, Config{TileSize: 8, NumWorkers: 2, Seed: 1})
	frame, stats, err := r.Render(context.Background(), func(tc TileCompletion) {
		completed++
		if tc.TileNumber != completed || tc.TotalTiles != 9 {
			t.Errorf("Unexpected progress %d/%d", tc.TileNumber, tc.TotalTiles)
		}
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if completed != 9 || stats.Tiles != 9 {
		t.Errorf("Expected 9 tiles, got %d callbacks and %d in stats", completed, stats.Tiles)
	}
	if frame.Width != 24 || frame.Height != 18 || len(frame.Pixels) != 24*18 {
		t.Fatalf("Unexpected frame size %dx%d", frame.Width, frame.Height)
	}
	if stats.SamplesPerPixel != 4 || stats.PrimaryRays() != 24*18*4 {
		t.Errorf("Unexpected sample counts %+v", stats)
	}
	if stats.MeanLuminance <= 0 || stats.MaxLuminance < stats.MeanLuminance {
		t.Errorf("Unexpected luminance stats %+v", stats)
	}
	for i, p := range frame.Pixels {
		if !p.IsFinite() {
			t.Fatalf("Pixel %d is not finite: %v", i, p)
		}
	}
	if table := stats.Table(); !strings.Contains(table, "24x18") {
		t.Errorf("Expected resolution in stats table:\n%s", table)
	}
}

func TestRenderer_DeterministicAcrossWorkers(t *testing.T) {
	s := newTestScene(t, 20, 20)

	single, _, err := New(s, Config{TileSize: 5, NumWorkers: 1, Seed: 7}).Render(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	parallel, _, err := New(s, Config{TileSize: 5, NumWorkers: 4, Seed: 7}).Render(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := range single.Pixels {
		if single.Pixels[i] != parallel.Pixels[i] {
			t.Fatalf("Pixel %d differs: %v vs %v", i, single.Pixels[i], parallel.Pixels[i])
		}
	}
}

func TestRenderer_Cancelled(t *testing.T) {
	s := newTestScene(t, 16, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, _, err := New(s, Config{TileSize: 4, NumWorkers: 2}).Render(ctx, nil)
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Expected ErrInterrupted, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected the context error to be wrapped, got %v", err)
	}
	if frame == nil {
		t.Error("Expected the partial frame to be returned")
	}
}

func TestRenderer_SceneNotReady(t *testing.T) {
	s := scene.New(scene.DefaultConfig())
	if _, _, err := New(s, DefaultConfig()).Render(context.Background(), nil); !errors.Is(err, ErrSceneNotReady) {
		t.Errorf("Expected ErrSceneNotReady, got %v", err)
	}
}

func TestRenderer_CreatedBeforeSetup(t *testing.T) {
	config := scene.DefaultConfig()
	config.Width = 6
	config.Height = 4
	config.Background = core.NewVec3(0.5, 0.5, 0.5)
	s := scene.New(config)
	r := New(s, Config{TileSize: 4, NumWorkers: 2})

	if err := s.Setup(); err != nil {
		t.Fatal(err)
	}
	frame, _, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, p := range frame.Pixels {
		if p != config.Background {
			t.Fatalf("Pixel %d: expected background, got %v", i, p)
		}
	}
}
