package main

import (
	"os"

	"github.com/df07/go-photon-raytracer/cmd"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	// -v is taken by verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "photon-raytracer"
	app.Usage = "render scenes with Whitted ray tracing and photon mapping"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "env",
			Value: ".env",
			Usage: "file with RAYTRACER_* settings loaded into the environment",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Usage:     "render a built-in scene",
			ArgsUsage: "[scene]",
			Description: `
Render one of the built-in scenes (see the scenes command) and write it to
<out>/<scene>/render_<timestamp>.png. Scene settings can be overridden with
flags; runtime settings are read from RAYTRACER_* environment variables.

Pressing Ctrl+C stops the render between tiles and saves the partial frame.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (0 keeps the scene's width)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (0 keeps the scene's height)",
				},
				cli.StringFlag{
					Name:  "mode, m",
					Usage: "rendering mode: standard or photon",
				},
				cli.IntFlag{
					Name:  "photons",
					Usage: "number of photons to emit in photon mode",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum reflection/refraction depth",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Usage: "output gamma",
				},
				cli.StringFlag{
					Name:  "mesh",
					Usage: "PLY file rendered by the mesh scene",
				},
				cli.StringFlag{
					Name:  "texture",
					Usage: "PNG or JPEG ground texture for the glass scene",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of render workers (0 = one per CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "tile edge length in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "seed for photon emission and pixel sampling",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "output",
					Usage: "output directory",
				},
				cli.UintFlag{
					Name:  "thumbnail",
					Usage: "also write a thumbnail with this longer edge",
				},
				cli.StringFlag{
					Name:  "tone-map",
					Value: "clamp",
					Usage: "HDR to 8-bit mapping: clamp or reinhard",
				},
				cli.BoolFlag{
					Name:  "no-upload",
					Usage: "skip the S3 upload even if a bucket is configured",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "info",
			Usage:  "describe the host CPU and memory",
			Action: cmd.HostInfo,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("raytracer").Error(err)
		os.Exit(1)
	}
}
