// hfcsinfo prints what a composite contains without importing it: scene
// settings, the camera layer's channel sample counts, and every anchor.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/camtools/hfcs2scene/internal/composite"
	"github.com/camtools/hfcs2scene/internal/lens"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: hfcsinfo <composite.hfcs>\n")
		os.Exit(2)
	}
	path := flag.Arg(0)

	comp, err := composite.ParseFile(path)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	s := comp.Settings
	fmt.Printf("[*] %s: %dx%d @ %d fps\n", path, s.Width, s.Height, s.FrameRate)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Layer", "Name", "Samples", "Detail"})

	if comp.Camera != nil {
		tw.AppendRow(table.Row{"CameraLayer", "-", channelSummary(comp.Camera), zoomSummary(comp.Camera, s)})
	}
	for _, anchor := range comp.Anchors {
		pos := anchor.Position
		tw.AppendRow(table.Row{
			"PointLayer",
			anchor.Name,
			1,
			fmt.Sprintf("(%.1f, %.1f, %.1f)", pos.X, pos.Y, pos.Z),
		})
	}
	tw.Render()

	if comp.Camera == nil {
		log.Printf("[!] %v", composite.ErrMissingCamera)
	}
	if comp.SkippedAnchors > 0 {
		log.Printf("[!] %d malformed point layer(s) skipped", comp.SkippedAnchors)
	}
}

func channelSummary(ch *composite.CameraChannels) string {
	return fmt.Sprintf("pos=%d rot=%d zoom=%d", len(ch.Position), len(ch.Rotation), len(ch.Zoom))
}

// zoomSummary reports the focal length and vertical FOV at the first zoom
// sample, the same diagnostic the reference importer printed.
func zoomSummary(ch *composite.CameraChannels, s composite.SceneSettings) string {
	if len(ch.Zoom) == 0 {
		return "no zoom data"
	}
	zoom := ch.Zoom[0].Value
	focal := lens.ZoomToLens(zoom, float64(s.Width))
	fov := lens.FOV(zoom, float64(s.Height)) * 180.0 / math.Pi
	return fmt.Sprintf("lens %.2fmm, fov %.1f deg", focal, fov)
}
