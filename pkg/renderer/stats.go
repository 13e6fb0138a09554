package renderer

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/olekukonko/tablewriter"
)

// TileStats summarizes the pixels of one rendered tile
type TileStats struct {
	Pixels       int
	Luminance    float64 // Sum of pixel luminance
	MaxLuminance float64
	NonFinite    int // Pixels with NaN or infinite components
}

func (ts *TileStats) add(luminance float64) {
	if math.IsNaN(luminance) || math.IsInf(luminance, 0) {
		ts.NonFinite++
		return
	}
	ts.Luminance += luminance
	ts.MaxLuminance = math.Max(ts.MaxLuminance, luminance)
}

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width           int
	Height          int
	Tiles           int
	Workers         int
	SamplesPerPixel int
	Duration        time.Duration
	MeanLuminance   float64
	MaxLuminance    float64
	NonFinite       int
}

// merge accumulates a tile into the frame totals. MeanLuminance holds the
// running sum until finalize.
func (rs *RenderStats) merge(ts TileStats) {
	rs.MeanLuminance += ts.Luminance
	rs.MaxLuminance = math.Max(rs.MaxLuminance, ts.MaxLuminance)
	rs.NonFinite += ts.NonFinite
}

func (rs *RenderStats) finalize(duration time.Duration) {
	rs.Duration = duration
	if pixels := rs.Width*rs.Height - rs.NonFinite; pixels > 0 {
		rs.MeanLuminance /= float64(pixels)
	}
}

// PrimaryRays returns the number of camera rays traced
func (rs RenderStats) PrimaryRays() int {
	return rs.Width * rs.Height * rs.SamplesPerPixel
}

// RaysPerSecond returns the primary ray throughput
func (rs RenderStats) RaysPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.PrimaryRays()) / rs.Duration.Seconds()
}

// Table renders the statistics as a text table
func (rs RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Resolution", "Tiles", "Workers", "Samples/px", "Mean lum.", "Max lum.", "Rays/s", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", rs.Width, rs.Height),
		fmt.Sprintf("%d", rs.Tiles),
		fmt.Sprintf("%d", rs.Workers),
		fmt.Sprintf("%d", rs.SamplesPerPixel),
		fmt.Sprintf("%.4f", rs.MeanLuminance),
		fmt.Sprintf("%.4f", rs.MaxLuminance),
		fmt.Sprintf("%.0f", rs.RaysPerSecond()),
		rs.Duration.Round(time.Millisecond).String(),
	})
	if rs.NonFinite > 0 {
		table.SetFooter([]string{"", "", "", "", "", "", "NON-FINITE", fmt.Sprintf("%d", rs.NonFinite)})
	}
	table.Render()
	return buf.String()
}
