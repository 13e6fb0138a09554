package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/integrator"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/df07/go-photon-raytracer/pkg/scene"
)

// DefaultTileSize is the tile edge length used when none is configured
const DefaultTileSize = 32

var (
	// ErrInterrupted is returned when the render context is cancelled before
	// every tile has been rendered. It wraps the context error.
	ErrInterrupted = errors.New("render interrupted")

	// ErrSceneNotReady is returned when rendering a scene that was never set up
	ErrSceneNotReady = errors.New("scene is not set up")
)

// Config contains configuration for parallel rendering
type Config struct {
	TileSize   int   // Edge length of the square tiles
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for the per-tile random generators
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletion is passed to the progress callback after each tile
type TileCompletion struct {
	Tile       *Tile
	Stats      TileStats
	TileNumber int // Tiles completed so far, including this one
	TotalTiles int
}

// Renderer renders a frozen scene into a frame using a pool of workers
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     log.Logger
}

// New creates a renderer for a scene that has been set up
func New(s *scene.Scene, config Config) *Renderer {
	return &Renderer{
		scene:      s,
		integrator: integrator.NewRaytracer(s),
		config:     config,
		logger:     log.New("renderer"),
	}
}

// Render traces every pixel of the scene. The optional callback is invoked
// from the calling goroutine, once per finished tile. Cancelling ctx stops
// the render between tiles and returns ErrInterrupted along with the
// partially rendered frame.
func (r *Renderer) Render(ctx context.Context, progress func(TileCompletion)) (*Frame, RenderStats, error) {
	if !r.scene.Frozen() {
		return nil, RenderStats{}, ErrSceneNotReady
	}

	start := time.Now()
	config := r.scene.Config
	frame := NewFrame(config.Width, config.Height)
	tiles := NewTileGrid(config.Width, config.Height, r.config.TileSize, r.config.Seed)

	pool := NewWorkerPool(r.integrator, r.config.NumWorkers, len(tiles))
	stats := RenderStats{
		Width:           config.Width,
		Height:          config.Height,
		Tiles:           len(tiles),
		Workers:         pool.GetNumWorkers(),
		SamplesPerPixel: config.Sampler.SamplesPerPixel(),
	}

	r.logger.Infof("Rendering %dx%d %s scene: %d tiles on %d workers",
		config.Width, config.Height, config.Mode, len(tiles), stats.Workers)

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Frame: frame})
	}

	// Collect every result so the workers can drain the queue before Stop
	var interrupted error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if interrupted == nil {
				interrupted = result.Error
			}
			continue
		}

		stats.merge(result.Stats)
		if progress != nil {
			progress(TileCompletion{
				Tile:       tiles[result.TaskID],
				Stats:      result.Stats,
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.Stop()

	stats.finalize(time.Since(start))
	if interrupted != nil {
		r.logger.Warningf("Render interrupted after %v", stats.Duration)
		return frame, stats, fmt.Errorf("%w: %w", ErrInterrupted, interrupted)
	}

	if stats.NonFinite > 0 {
		r.logger.Warningf("%d pixels have non-finite colors", stats.NonFinite)
	}
	r.logger.Infof("Render finished in %v", stats.Duration)
	return frame, stats, nil
}
