package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/config"
	"github.com/df07/go-photon-raytracer/pkg/output"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
	"github.com/df07/go-photon-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFrame renders a built-in scene and hands the image to the
// configured consumers: a PNG file, an optional thumbnail and an optional S3
// upload. An interrupted render still saves the partial frame.
func RenderFrame(ctx *cli.Context) error {
	settings, err := config.Load(ctx.GlobalString("env"))
	if err != nil {
		return err
	}
	setupLogging(ctx, settings.LogLevel)

	sceneName := ctx.Args().First()
	if sceneName == "" {
		sceneName = "spheres"
	}
	if ctx.NArg() > 1 {
		return errors.New("render takes at most one scene name")
	}

	applyFlagOverrides(ctx, &settings)
	toneMap, err := output.ParseToneMap(settings.ToneMap)
	if err != nil {
		return err
	}

	params := scene.Params{
		Width:       ctx.Int("width"),
		Height:      ctx.Int("height"),
		Mode:        ctx.String("mode"),
		PhotonCount: ctx.Int("photons"),
		Gamma:       ctx.Float64("gamma"),
		MeshPath:    ctx.String("mesh"),
		TexturePath: ctx.String("texture"),
	}
	if ctx.IsSet("depth") {
		depth := ctx.Int("depth")
		params.MaxDepth = &depth
	}
	if ctx.IsSet("seed") {
		seed := ctx.Int64("seed")
		params.Seed = &seed
	}

	start := time.Now()
	sc, err := scene.Load(sceneName, params)
	if err != nil {
		return err
	}
	logger.Noticef("loaded scene %q (%d objects, %d primitives, %d lights) in %v",
		sceneName, len(sc.Objects), sc.PrimitiveCount(), len(sc.Lights), time.Since(start))
	if sc.Photons != nil {
		logger.Noticef("photon map holds %d photons", sc.Photons.Len())
	}

	if host, err := renderer.DescribeHost(); err == nil {
		logger.Infof("host: %s", host)
	} else {
		logger.Warningf("could not describe host: %v", err)
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := renderer.New(sc, renderer.Config{
		TileSize:   settings.TileSize,
		NumWorkers: settings.Workers,
		Seed:       ctx.Int64("seed"),
	})
	frame, stats, renderErr := r.Render(renderCtx, reportProgress)
	if renderErr != nil && !errors.Is(renderErr, renderer.ErrInterrupted) {
		return renderErr
	}
	logger.Noticef("frame statistics\n%s", stats.Table())

	name := fmt.Sprintf("render_%s", time.Now().Format("20060102_150405"))
	if renderErr != nil {
		name += "_partial"
	}

	consumers, err := buildConsumers(settings, sceneName)
	if err != nil {
		return err
	}
	if err := output.Publish(context.Background(), output.ToImage(frame, toneMap), name, consumers...); err != nil {
		return err
	}
	return renderErr
}

// applyFlagOverrides lets explicitly set flags win over env settings
func applyFlagOverrides(ctx *cli.Context, settings *config.Settings) {
	if ctx.IsSet("workers") {
		settings.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("tile-size") {
		settings.TileSize = ctx.Int("tile-size")
	}
	if ctx.IsSet("out") {
		settings.OutputDir = ctx.String("out")
	}
	if ctx.IsSet("thumbnail") {
		settings.ThumbnailSize = ctx.Uint("thumbnail")
	}
	if ctx.IsSet("tone-map") {
		settings.ToneMap = ctx.String("tone-map")
	}
	if ctx.Bool("no-upload") {
		settings.S3Bucket = ""
	}
}

// buildConsumers returns the image consumers enabled by settings. Files go
// to <OutputDir>/<scene>/.
func buildConsumers(settings config.Settings, sceneName string) ([]output.Consumer, error) {
	dir := filepath.Join(settings.OutputDir, sceneName)
	consumers := []output.Consumer{output.NewPNGWriter(dir)}

	if settings.ThumbnailSize > 0 {
		consumers = append(consumers, output.NewThumbnailWriter(dir, settings.ThumbnailSize))
	}

	if settings.UploadEnabled() {
		uploader, err := output.NewS3Uploader(output.S3Config{
			Bucket:    settings.S3Bucket,
			Prefix:    filepath.ToSlash(filepath.Join(settings.S3Prefix, sceneName)),
			Region:    settings.S3Region,
			Endpoint:  settings.S3Endpoint,
			AccessKey: settings.S3AccessKey,
			SecretKey: settings.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		consumers = append(consumers, uploader)
	}
	return consumers, nil
}

func reportProgress(tc renderer.TileCompletion) {
	logger.Debugf("tile %d/%d done %v", tc.TileNumber, tc.TotalTiles, tc.Tile.Bounds)

	// Report every 10%
	step := max(tc.TotalTiles/10, 1)
	if tc.TileNumber%step == 0 || tc.TileNumber == tc.TotalTiles {
		logger.Infof("progress: %d%% (%d/%d tiles)", tc.TileNumber*100/tc.TotalTiles, tc.TileNumber, tc.TotalTiles)
	}
}
