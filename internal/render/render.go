// Package render draws the sweep outcome into the two report sheets:
// the per-iteration scatter panels and the parameter trend grid.
package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"sepal/internal/geom"
	"sepal/internal/logging"
	"sepal/internal/margin"
	"sepal/internal/sweep"
)

const (
	datasetFile = "dataset.png"
	trendsFile  = "parameters_vs_shift_distance.png"

	panelCols = 2
	trendTile = 3
)

// ProvideFn builds a configured renderer.
type ProvideFn func() (*PNGRenderer, error)

type Option func(*PNGRenderer)

func WithDir(dir string) Option {
	return func(r *PNGRenderer) {
		r.opts.dir = dir
	}
}

func WithDPI(dpi int) Option {
	return func(r *PNGRenderer) {
		r.opts.dpi = dpi
	}
}

var defaultOptions = Options{dir: "results", dpi: 96}

type Options struct {
	dir string
	dpi int
}

// PNGRenderer writes dataset.png and parameters_vs_shift_distance.png
// under the output directory.
type PNGRenderer struct {
	opts Options
}

func New(opts ...Option) (*PNGRenderer, error) {
	r := &PNGRenderer{opts: defaultOptions}
	for _, f := range opts {
		f(r)
	}
	if r.opts.dir == "" {
		return nil, fmt.Errorf("unable creating renderer instance, output dir is required")
	}
	if r.opts.dpi < 1 {
		return nil, fmt.Errorf("unable creating renderer instance, dpi must be positive")
	}
	return r, nil
}

// Render draws both sheets concurrently; the first failure wins.
func (r *PNGRenderer) Render(ctx context.Context, res *sweep.Result) error {
	if res == nil {
		return fmt.Errorf("render: result is nil")
	}

	if err := os.MkdirAll(r.opts.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.renderPanels(gctx, res)
	})
	g.Go(func() error {
		return r.renderTrends(res)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logging.FromContext(ctx).Infof("rendered %s", r.opts.dir)
	return nil
}

// Paths lists the sheet locations in render order.
func (r *PNGRenderer) Paths() []string {
	return []string{
		filepath.Join(r.opts.dir, datasetFile),
		filepath.Join(r.opts.dir, trendsFile),
	}
}

func (r *PNGRenderer) renderPanels(ctx context.Context, res *sweep.Result) error {
	if len(res.Panels) == 0 {
		logging.FromContext(ctx).Warnf("no panels to draw, skipping %s", datasetFile)
		return nil
	}

	rows := (len(res.Panels) + panelCols - 1) / panelCols
	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, panelCols)
	}

	for i, panel := range res.Panels {
		p, err := panelPlot(panel)
		if err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
		plots[i/panelCols][i%panelCols] = p
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(20*vg.Inch, vg.Length(rows)*10*vg.Inch),
		vgimg.UseDPI(r.opts.dpi),
	)
	drawPlots(plots, draw.Tiles{
		Rows: rows, Cols: panelCols,
		PadX: vg.Points(20), PadY: vg.Points(20),
		PadTop: vg.Points(10), PadBottom: vg.Points(10),
		PadLeft: vg.Points(10), PadRight: vg.Points(10),
	}, canvas)

	return writePNG(filepath.Join(r.opts.dir, datasetFile), canvas)
}

func (r *PNGRenderer) renderTrends(res *sweep.Result) error {
	series := []struct {
		name string
		at   func(rec sweep.Record) float64
	}{
		{name: "Beta0", at: func(rec sweep.Record) float64 { return rec.Beta0 }},
		{name: "Beta1", at: func(rec sweep.Record) float64 { return rec.Beta1 }},
		{name: "Beta2", at: func(rec sweep.Record) float64 { return rec.Beta2 }},
		{name: "Logistic Loss", at: func(rec sweep.Record) float64 { return rec.Loss }},
	}

	plots := make([][]*plot.Plot, trendTile)
	for i := range plots {
		plots[i] = make([]*plot.Plot, trendTile)
	}

	for i, s := range series {
		xys := make(plotter.XYs, 0, len(res.Records))
		for _, rec := range res.Records {
			v := s.at(rec)
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: rec.Distance, Y: v})
		}

		p, err := trendPlot(s.name, xys)
		if err != nil {
			return fmt.Errorf("trend %s: %w", s.name, err)
		}
		plots[i/trendTile][i%trendTile] = p
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(18*vg.Inch, 15*vg.Inch),
		vgimg.UseDPI(r.opts.dpi),
	)
	drawPlots(plots, draw.Tiles{
		Rows: trendTile, Cols: trendTile,
		PadX: vg.Points(20), PadY: vg.Points(20),
		PadTop: vg.Points(10), PadBottom: vg.Points(10),
		PadLeft: vg.Points(10), PadRight: vg.Points(10),
	}, canvas)

	return writePNG(filepath.Join(r.opts.dir, trendsFile), canvas)
}

func panelPlot(panel sweep.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shift Distance = %.2f", panel.Distance)

	// bands go in first so the samples stay on top
	for _, band := range panel.Bands {
		for _, ring := range band.Rings {
			poly, err := plotter.NewPolygon(ringXYs(ring))
			if err != nil {
				return nil, err
			}
			poly.Color = bandColor(band)
			poly.LineStyle.Width = 0
			poly.LineStyle.Color = color.NRGBA{}
			p.Add(poly)
		}
	}

	class0, err := plotter.NewScatter(pointXYs(panel.Class0))
	if err != nil {
		return nil, err
	}
	class0.GlyphStyle = draw.GlyphStyle{
		Color:  color.NRGBA{B: 255, A: 255},
		Radius: vg.Points(2.5),
		Shape:  draw.CircleGlyph{},
	}

	class1, err := plotter.NewScatter(pointXYs(panel.Class1))
	if err != nil {
		return nil, err
	}
	class1.GlyphStyle = draw.GlyphStyle{
		Color:  color.NRGBA{R: 255, A: 255},
		Radius: vg.Points(2.5),
		Shape:  draw.CircleGlyph{},
	}

	p.Add(class0, class1)
	p.Legend.Add("Class 0", class0)
	p.Legend.Add("Class 1", class1)

	if panel.BoundaryOK {
		boundary, err := plotter.NewLine(plotter.XYs{
			{X: panel.Window.XMin, Y: panel.Slope*panel.Window.XMin + panel.Intercept},
			{X: panel.Window.XMax, Y: panel.Slope*panel.Window.XMax + panel.Intercept},
		})
		if err != nil {
			return nil, err
		}
		boundary.LineStyle = draw.LineStyle{
			Color:  color.Black,
			Width:  vg.Points(1.5),
			Dashes: []vg.Length{vg.Points(6), vg.Points(4)},
		}
		p.Add(boundary)
		p.Legend.Add("Decision Boundary", boundary)
	}

	p.X.Min, p.X.Max = panel.Window.XMin, panel.Window.XMax
	p.Y.Min, p.Y.Max = panel.Window.YMin, panel.Window.YMax
	p.Legend.Top = true

	return p, nil
}

func trendPlot(name string, xys plotter.XYs) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = name + " vs Shift Distance"
	p.X.Label.Text = "Shift Distance"
	p.Y.Label.Text = name

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	p.Add(line)

	return p, nil
}

func drawPlots(plots [][]*plot.Plot, tiles draw.Tiles, canvas *vgimg.Canvas) {
	canvases := plot.Align(plots, tiles, draw.New(canvas))
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
}

// bandColor tints class 1 red and class 0 blue, fainter for lower
// confidence: alpha 0.05 at level 0.7 rising to 0.15 at 0.9.
func bandColor(band margin.Band) color.NRGBA {
	alpha := 0.05 + (band.Level-0.7)*0.5
	if alpha < 0.05 {
		alpha = 0.05
	}
	if alpha > 1 {
		alpha = 1
	}

	a := uint8(math.Round(alpha * 255))
	if band.Class == 1 {
		return color.NRGBA{R: 255, A: a}
	}
	return color.NRGBA{B: 255, A: a}
}

func pointXYs(pts []geom.Point) plotter.XYs {
	xys := make(plotter.XYs, 0, len(pts))
	for _, p := range pts {
		xys = append(xys, plotter.XY{X: p.Dim(0), Y: p.Dim(1)})
	}
	return xys
}

func ringXYs(ring geom.Polyline) plotter.XYs {
	xys := make(plotter.XYs, 0, len(ring))
	for _, p := range ring {
		xys = append(xys, plotter.XY{X: p.Dim(0), Y: p.Dim(1)})
	}
	return xys
}

func writePNG(path string, canvas *vgimg.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
