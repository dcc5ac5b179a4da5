package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/camtools/hfcs2scene/internal/composite"
	"github.com/camtools/hfcs2scene/internal/config"
	"github.com/camtools/hfcs2scene/internal/lens"
	"github.com/camtools/hfcs2scene/internal/scene"
	"github.com/camtools/hfcs2scene/internal/system"
	"github.com/camtools/hfcs2scene/internal/timeline"
	"github.com/camtools/hfcs2scene/internal/transform"
)

// ImportProject drives one composite import: parse, synchronize, transform,
// and write the result into the injected sink. The sink is the only place
// with scene side effects; everything above it is pure.
type ImportProject struct {
	Config *config.Config
	Sink   scene.Sink
}

// NewImportProject wires an import for one composite file.
func NewImportProject(cfg *config.Config, sink scene.Sink) *ImportProject {
	cfg.Defaults()
	return &ImportProject{Config: cfg, Sink: sink}
}

// Run processes the composite to completion. StatusCancelled with a nil
// error means the document had no camera layer; scene settings and anchors
// are still applied in that case, matching the reference importer's
// statement order.
func (p *ImportProject) Run() (scene.Status, error) {
	startTime := time.Now()

	comp, err := composite.ParseFile(p.Config.InputPath)
	if err != nil {
		return scene.StatusCancelled, err
	}
	parseTime := time.Since(startTime)

	// Settings are applied before the camera presence check.
	settings := comp.Settings
	p.Sink.SetRenderSettings(settings.Width, settings.Height, settings.FrameRate)

	frames, err := timeline.Synchronize(comp.Camera)
	if err != nil {
		return scene.StatusCancelled, fmt.Errorf("%s: %w", p.Config.InputPath, err)
	}
	p.Sink.SetFrameEnd(len(frames))

	status := scene.StatusFinished
	if comp.Camera == nil {
		log.Printf("[!] %v: importing anchors only", composite.ErrMissingCamera)
		status = scene.StatusCancelled
	} else {
		p.buildCamera(frames, settings.Width)
	}

	for _, anchor := range comp.Anchors {
		p.Sink.AddMarker(anchor.Name, transform.AnchorWorld(anchor.Position), p.Config.MarkerDisplaySize)
	}
	if comp.SkippedAnchors > 0 {
		log.Printf("[!] Skipped %d malformed point layer(s) in %s", comp.SkippedAnchors, p.Config.InputPath)
	}

	if p.Config.ShowStats {
		p.printStats(parseTime, time.Since(startTime), len(frames), len(comp.Anchors))
	}

	return status, nil
}

// buildCamera creates the camera object and records one focal-length and one
// location/rotation keyframe per synchronized frame. An absent channel
// skips its keyframe step; with only one of position/rotation recorded, the
// missing channel contributes the identity.
func (p *ImportProject) buildCamera(frames []timeline.Frame, compWidth int) {
	cam := p.Sink.AddCamera(p.Config.CameraName, p.Config.CameraDisplaySize)

	for _, f := range frames {
		p.Sink.SetCurrentFrame(f.Index)

		if f.Zoom != nil {
			cam.SetLens(lens.ZoomToLens(*f.Zoom, float64(compWidth)))
			cam.InsertLensKey()
		}

		if f.Position != nil || f.Rotation != nil {
			var pos, rot transform.Vec3
			if f.Position != nil {
				pos = *f.Position
			}
			if f.Rotation != nil {
				rot = *f.Rotation
			}
			cam.SetWorld(transform.CameraWorld(pos, rot))
			cam.InsertTransformKey()
		}
	}

	p.Sink.SetCurrentFrame(0)
}

func (p *ImportProject) printStats(parseTime, totalTime time.Duration, frames, anchors int) {
	report := fmt.Sprintf(
		"--- [IMPORT REPORT] ---\n"+
			"Build: %s\n"+
			"Input: %s\n"+
			"Frames: %d | Anchors: %d\n"+
			"Parse: %.2fms | Total: %.2fms\n",
		p.Config.BuildVersion, p.Config.InputPath, frames, anchors,
		float64(parseTime.Microseconds())/1000.0, float64(totalTime.Microseconds())/1000.0,
	)
	if rss, err := system.ProcessRSS(); err == nil {
		report += fmt.Sprintf("RSS: %.1fMB | CPUs: %d\n", float64(rss)/(1024*1024), system.LogicalCPUs())
	}
	report += "-----------------------\n"
	fmt.Print(report)
}
