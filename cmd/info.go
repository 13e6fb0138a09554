package cmd

import (
	"fmt"
	"runtime"

	"github.com/df07/go-photon-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

// HostInfo prints the CPU and memory available for rendering.
func HostInfo(ctx *cli.Context) error {
	setupLogging(ctx, "")

	host, err := renderer.DescribeHost()
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "%s\n", host)
	fmt.Fprintf(ctx.App.Writer, "default workers: %d\n", runtime.NumCPU())
	return nil
}
