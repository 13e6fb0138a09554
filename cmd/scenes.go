package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-photon-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx, "")
	fmt.Fprint(ctx.App.Writer, scenesTable(scene.List()))
	return nil
}

func scenesTable(infos []scene.Info) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range infos {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()
	return buf.String()
}
