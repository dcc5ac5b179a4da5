// Package preview renders a top-down diagnostic plot of an imported scene:
// the camera path as a line and the anchor markers as a scatter, both in
// target-space X/Y meters.
package preview

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/camtools/hfcs2scene/internal/scene"
)

// Render writes the plot as a PNG to path.
func Render(doc *scene.Document, path string) error {
	p := plot.New()
	p.Title.Text = "Camera path (top-down)"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	if doc.Camera != nil && len(doc.Camera.TransformKeys) > 0 {
		pts := make(plotter.XYs, 0, len(doc.Camera.TransformKeys))
		for _, k := range doc.Camera.TransformKeys {
			pts = append(pts, plotter.XY{X: k.World[0][3], Y: k.World[1][3]})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("preview: camera path: %w", err)
		}
		line.Width = vg.Points(1)
		line.Color = color.RGBA{B: 200, A: 255}
		p.Add(line)
		p.Legend.Add(doc.Camera.Name, line)
	}

	if len(doc.Markers) > 0 {
		pts := make(plotter.XYs, 0, len(doc.Markers))
		for _, m := range doc.Markers {
			pts = append(pts, plotter.XY{X: m.World[0][3], Y: m.World[1][3]})
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("preview: anchors: %w", err)
		}
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		p.Add(scatter)
		p.Legend.Add("anchors", scatter)
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
