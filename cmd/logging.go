package cmd

import (
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("raytracer")

// setupLogging applies the level from the settings and the global -v/-vv flags
func setupLogging(ctx *cli.Context, level string) {
	if level != "" {
		log.SetLevel(log.ParseLevel(level))
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
