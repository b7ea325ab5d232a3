package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/colormap"
	"github.com/gogpu/flowviz/flow"
	"github.com/gogpu/flowviz/internal/trace"
)

var (
	isolineColor = color.NRGBA{A: 64}
	gridColor    = color.NRGBA{R: 176, G: 176, B: 176, A: 153}
	quiverColor  = color.NRGBA{A: 179}
)

// fieldPlot assembles the layers of the flow figure in drawing order.
func fieldPlot(res *flowviz.Result, view flowviz.View, cmap *colormap.Map, levels []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = res.Title()
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Padding, p.Y.Padding = 0, 0

	if view.ShowContour {
		heat := plotter.NewHeatMap(bandGrid{psiGrid{res}, levels}, bandPalette(cmap, len(levels)-1, contourAlpha))
		iso := plotter.NewContour(psiGrid{res}, levels[1:len(levels)-1], nil)
		iso.LineStyles = []draw.LineStyle{{Color: isolineColor, Width: vg.Points(0.5)}}
		p.Add(heat, iso)
	}

	grid := plotter.NewGrid()
	for _, sty := range []*draw.LineStyle{&grid.Vertical, &grid.Horizontal} {
		sty.Color = gridColor
		sty.Width = vg.Points(0.6)
		sty.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	}
	p.Add(grid)

	if view.ShowStreamlines {
		col := color.Color(color.Black)
		if view.ShowContour {
			col = color.White
		}
		if err := addStreamlines(p, res, view, col); err != nil {
			return nil, err
		}
	}
	if view.ShowVectors {
		if f := vectorField(res, view.QuiverStep(res.Grid.Points)); f != nil {
			p.Add(f)
		}
	}
	if c, ok := res.Pattern.(flow.Cylinder); ok {
		l, err := plotter.NewLine(circle(c.Radius, 180))
		if err != nil {
			return nil, err
		}
		l.Color = color.Black
		l.Width = vg.Points(2)
		p.Add(l)
	}

	// the heat map cells are centred on the samples
	h := res.Grid.Spacing() / 2
	xmin, xmax, ymin, ymax := res.Grid.Bounds()
	p.X.Min, p.X.Max = xmin-h, xmax+h
	p.Y.Min, p.Y.Max = ymin-h, ymax+h
	return p, nil
}

func addStreamlines(p *plot.Plot, res *flowviz.Result, view flowviz.View, col color.Color) error {
	opts := trace.DefaultStreamOptions()
	opts.Density = float64(view.StreamlineDensity) / 10
	lines := trace.Streamlines(res.U, res.V, trace.FromGrid(res.Grid), opts)

	heads := &arrowHeads{color: col, length: vg.Points(6), halfWidth: vg.Points(3)}
	for _, sl := range lines {
		xys := make(plotter.XYs, len(sl.Points))
		for i, pt := range sl.Points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.Color = col
		l.Width = vg.Points(0.8)
		p.Add(l)
		if len(sl.Points) > 1 {
			heads.segs = append(heads.segs, trace.Segment{A: sl.Points[sl.Arrow], B: sl.Points[sl.Arrow+1]})
		}
	}
	p.Add(heads)
	flowviz.Logger().Debug("chart: streamlines", "count", len(lines), "density", opts.Density)
	return nil
}

// vectorField returns the subsampled velocity arrows, or nil for a still
// field.
func vectorField(res *flowviz.Result, step int) *plotter.Field {
	q := quiverField{u: res.U, v: res.V, xs: res.Grid.Xs, ys: res.Grid.Ys, step: max(step, 1)}
	if m := q.maxSpeed(); m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return nil
	}
	f := plotter.NewField(q)
	f.LineStyle.Color = quiverColor
	f.DrawGlyph = drawArrow
	return f
}

// drawArrow fills an arrow from the origin to (1, 0) in the glyph frame
// set up by plotter.Field.
func drawArrow(c vg.Canvas, sty draw.LineStyle, v plotter.XY) {
	if math.Hypot(v.X, v.Y) == 0 {
		return
	}
	const (
		shaft = 0.04
		neck  = 0.7
		head  = 0.14
	)
	var pa vg.Path
	pa.Move(vg.Point{X: 0, Y: -shaft})
	pa.Line(vg.Point{X: neck, Y: -shaft})
	pa.Line(vg.Point{X: neck, Y: -head})
	pa.Line(vg.Point{X: 1, Y: 0})
	pa.Line(vg.Point{X: neck, Y: head})
	pa.Line(vg.Point{X: neck, Y: shaft})
	pa.Line(vg.Point{X: 0, Y: shaft})
	pa.Close()
	c.SetColor(sty.Color)
	c.Fill(pa)
}

// circle returns n+1 points of a closed circle about the origin.
func circle(radius float64, n int) plotter.XYs {
	xys := make(plotter.XYs, n+1)
	for i := range xys {
		a := 2 * math.Pi * float64(i) / float64(n)
		xys[i] = plotter.XY{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return xys
}

// arrowHeads marks the direction of each streamline with a filled
// triangle at the middle of a segment. Sizes are in page units.
type arrowHeads struct {
	segs      []trace.Segment
	color     color.Color
	length    vg.Length
	halfWidth vg.Length
}

func (a *arrowHeads) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, s := range a.segs {
		ax, ay := trX(s.A.X), trY(s.A.Y)
		bx, by := trX(s.B.X), trY(s.B.Y)
		dx, dy := float64(bx-ax), float64(by-ay)
		d := math.Hypot(dx, dy)
		if d == 0 {
			continue
		}
		ux, uy := vg.Length(dx/d), vg.Length(dy/d)
		tip := vg.Point{X: (ax + bx) / 2, Y: (ay + by) / 2}
		base := vg.Point{X: tip.X - ux*a.length, Y: tip.Y - uy*a.length}
		pts := []vg.Point{
			tip,
			{X: base.X - uy*a.halfWidth, Y: base.Y + ux*a.halfWidth},
			{X: base.X + uy*a.halfWidth, Y: base.Y - ux*a.halfWidth},
		}
		if clipped := c.ClipPolygonXY(pts); len(clipped) > 2 {
			c.FillPolygon(a.color, clipped)
		}
	}
}

// bandPalette returns the colours of n ψ bands with the given opacity.
func bandPalette(cmap *colormap.Map, n int, alpha float64) colormap.Palette {
	bands := cmap.Bands(n)
	pal := make(colormap.Palette, len(bands))
	for k, c := range bands {
		c.A *= alpha
		pal[k] = c.Color()
	}
	return pal
}
