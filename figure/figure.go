package figure

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/colormap"
	"github.com/gogpu/flowviz/flow"
	"github.com/gogpu/flowviz/internal/trace"
)

// Visual constants of the plot.
const (
	contourAlpha = 0.7
	quiverScale  = 25.0 // data units per plot width
	quiverAlpha  = 0.7
)

// ErrNoResult is returned when Render is called without a result.
var ErrNoResult = errors.New("figure: nil result")

// Render draws res according to view and writes the figure to w as PNG.
//
// Panics raised while drawing are returned as a *flowviz.RenderError.
func Render(w io.Writer, res *flowviz.Result, view flowviz.View, opts ...Option) (err error) {
	if res == nil {
		return ErrNoResult
	}
	defer func() {
		if r := recover(); r != nil {
			err = flowviz.Recovered("figure", r)
		}
	}()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.font == nil {
		if o.font, err = goRegular(); err != nil {
			return &flowviz.RenderError{Stage: "figure", Err: err}
		}
	}
	if o.title == "" {
		o.title = res.Title()
	}
	view = view.Normalize()

	dc := gg.NewContext(o.width, o.height)
	defer func() { _ = dc.Close() }()

	p := newPainter(dc, res, view, o)
	p.draw()
	if p.err != nil {
		return &flowviz.RenderError{Stage: "figure", Err: p.err}
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("figure: encode: %w", err)
	}
	flowviz.Logger().Debug("figure: rendered",
		"pattern", flowviz.PatternName(res.Pattern),
		"width", o.width,
		"height", o.height,
		"colormap", p.cmap.Name())
	return nil
}

// painter holds the state of one figure while it is drawn.
type painter struct {
	dc   *gg.Context
	res  *flowviz.Result
	view flowviz.View
	opts options

	cmap    *colormap.Map
	lat     trace.Lattice
	fr      frame
	cbWidth float64
	levels  []float64
	bands   []gg.RGBA // blended over white

	titleFace, labelFace, tickFace text.Face

	err error // first drawing error
}

func newPainter(dc *gg.Context, res *flowviz.Result, view flowviz.View, o options) *painter {
	cmap, ok := colormap.Lookup(view.Colormap)
	if !ok {
		flowviz.Logger().Warn("figure: unknown colormap, using default", "colormap", view.Colormap)
		cmap = colormap.Get(colormap.Default)
	}
	xmin, xmax, ymin, ymax := res.Grid.Bounds()
	fr, cbw := layout(o.width, o.height, view.ShowContour, xmin, xmax, ymin, ymax)

	p := &painter{
		dc: dc, res: res, view: view, opts: o,
		cmap:      cmap,
		lat:       trace.FromGrid(res.Grid),
		fr:        fr,
		cbWidth:   cbw,
		titleFace: o.font.Face(18),
		labelFace: o.font.Face(14),
		tickFace:  o.font.Face(11),
	}
	p.levels = trace.Levels(res.PsiMin, res.PsiMax, view.ContourLevels)
	p.bands = cmap.Bands(len(p.levels) - 1)
	for k, c := range p.bands {
		p.bands[k] = overWhite(c, contourAlpha)
	}
	return p
}

func (p *painter) fill() {
	if err := p.dc.Fill(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *painter) stroke() {
	if err := p.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *painter) setColor(c gg.RGBA) { p.dc.SetRGBA(c.R, c.G, c.B, c.A) }

func (p *painter) draw() {
	p.dc.ClearWithColor(p.opts.background)

	// axes face
	p.setColor(gg.White)
	p.dc.DrawRectangle(p.fr.x0, p.fr.y0, p.fr.side, p.fr.side)
	p.fill()

	if p.view.ShowContour {
		p.drawContours()
	}
	p.drawGrid()

	p.dc.ClipRect(p.fr.x0, p.fr.y0, p.fr.side, p.fr.side)
	if p.view.ShowStreamlines {
		p.drawStreamlines()
	}
	if p.view.ShowVectors {
		p.drawQuiver()
	}
	if c, ok := p.res.Pattern.(flow.Cylinder); ok {
		p.drawCylinder(c.Radius)
	}
	p.dc.ResetClip()

	p.drawAxes()
	if p.view.ShowContour {
		p.drawColorbar()
	}
}

// drawContours fills the plot pixel by pixel with the colour of the ψ band
// under each pixel, then outlines the band boundaries.
func (p *painter) drawContours() {
	x0, y0 := int(math.Floor(p.fr.x0)), int(math.Floor(p.fr.y0))
	x1, y1 := int(math.Ceil(p.fr.x1())), int(math.Ceil(p.fr.y1()))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			wx, wy := p.fr.world(float64(px)+0.5, float64(py)+0.5)
			k := trace.Band(p.levels, p.lat.Sample(p.res.Psi, wx, wy))
			if k < 0 {
				continue
			}
			p.dc.SetPixel(px, py, p.bands[k])
		}
	}

	p.dc.SetRGBA(0, 0, 0, 0.25)
	p.dc.SetLineWidth(0.5)
	for _, level := range p.levels[1 : len(p.levels)-1] {
		for _, s := range trace.Isolines(p.res.Psi, p.lat, level) {
			ax, ay := p.fr.px(s.A.X, s.A.Y)
			bx, by := p.fr.px(s.B.X, s.B.Y)
			p.dc.DrawLine(ax, ay, bx, by)
		}
	}
	p.stroke()
}

func (p *painter) drawGrid() {
	p.dc.SetRGBA(0.69, 0.69, 0.69, 0.6)
	p.dc.SetLineWidth(0.8)
	p.dc.SetDash(4, 3)
	for _, x := range niceTicks(p.fr.xmin, p.fr.xmax, 5) {
		px, _ := p.fr.px(x, 0)
		p.dc.DrawLine(px, p.fr.y0, px, p.fr.y1())
	}
	for _, y := range niceTicks(p.fr.ymin, p.fr.ymax, 5) {
		_, py := p.fr.px(0, y)
		p.dc.DrawLine(p.fr.x0, py, p.fr.x1(), py)
	}
	p.stroke()
	p.dc.ClearDash()
}

func (p *painter) drawStreamlines() {
	opts := trace.DefaultStreamOptions()
	opts.Density = float64(p.view.StreamlineDensity) / 10
	lines := trace.Streamlines(p.res.U, p.res.V, p.lat, opts)

	col := gg.Black
	if p.view.ShowContour {
		col = gg.White
	}
	p.setColor(col)
	p.dc.SetLineWidth(1)
	p.dc.SetLineCap(gg.LineCapRound)
	p.dc.SetLineJoin(gg.LineJoinRound)
	for _, l := range lines {
		for k, pt := range l.Points {
			x, y := p.fr.px(pt.X, pt.Y)
			if k == 0 {
				p.dc.MoveTo(x, y)
			} else {
				p.dc.LineTo(x, y)
			}
		}
	}
	p.stroke()

	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		a, b := l.Points[l.Arrow], l.Points[l.Arrow+1]
		ax, ay := p.fr.px(a.X, a.Y)
		bx, by := p.fr.px(b.X, b.Y)
		p.arrowHead((ax+bx)/2, (ay+by)/2, bx-ax, by-ay, 8, 4)
	}
	p.fill()
	flowviz.Logger().Debug("figure: streamlines", "count", len(lines), "density", opts.Density)
}

// arrowHead adds a triangle pointing along (dx, dy) with its tip at (x, y).
func (p *painter) arrowHead(x, y, dx, dy, length, halfWidth float64) {
	d := math.Hypot(dx, dy)
	if d == 0 {
		return
	}
	ux, uy := dx/d, dy/d
	nx, ny := -uy, ux
	bx, by := x-ux*length, y-uy*length
	p.dc.MoveTo(x, y)
	p.dc.LineTo(bx+nx*halfWidth, by+ny*halfWidth)
	p.dc.LineTo(bx-nx*halfWidth, by-ny*halfWidth)
	p.dc.ClosePath()
}

// drawQuiver draws velocity arrows whose length is speed/25 of the plot
// width.
func (p *painter) drawQuiver() {
	step := p.view.QuiverStep(p.res.Grid.Points)
	arrows := trace.Quiver(p.res.U, p.res.V, p.lat, step)

	shaft := math.Max(1, 0.0025*p.fr.side)
	headLen, headHalf := 4.5*shaft, 1.5*shaft
	p.dc.SetRGBA(0, 0, 0, quiverAlpha)
	for _, a := range arrows {
		// screen y grows downwards
		dx, dy := a.U, -a.V
		speed := math.Hypot(dx, dy)
		if speed == 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
			continue
		}
		length := speed / quiverScale * p.fr.side
		tx, ty := p.fr.px(a.X, a.Y)
		ux, uy := dx/speed, dy/speed
		nx, ny := -uy, ux

		hl, hh, sh := headLen, headHalf, shaft/2
		if length < hl {
			// shrink short arrows as a whole
			f := length / hl
			hl, hh, sh = length, hh*f, sh*f
		}
		neck := length - hl
		p.dc.MoveTo(tx+nx*sh, ty+ny*sh)
		p.dc.LineTo(tx+ux*neck+nx*sh, ty+uy*neck+ny*sh)
		p.dc.LineTo(tx+ux*neck+nx*hh, ty+uy*neck+ny*hh)
		p.dc.LineTo(tx+ux*length, ty+uy*length)
		p.dc.LineTo(tx+ux*neck-nx*hh, ty+uy*neck-ny*hh)
		p.dc.LineTo(tx+ux*neck-nx*sh, ty+uy*neck-ny*sh)
		p.dc.LineTo(tx-nx*sh, ty-ny*sh)
		p.dc.ClosePath()
	}
	p.fill()
}

func (p *painter) drawCylinder(radius float64) {
	cx, cy := p.fr.px(0, 0)
	p.setColor(gg.Black)
	p.dc.SetLineWidth(2)
	p.dc.DrawCircle(cx, cy, radius*p.fr.scale())
	p.stroke()
}

func (p *painter) drawAxes() {
	fr := p.fr
	p.setColor(gg.Black)
	p.dc.SetLineWidth(1)
	p.dc.DrawRectangle(fr.x0, fr.y0, fr.side, fr.side)
	p.stroke()

	p.dc.SetFont(p.tickFace)
	for _, x := range niceTicks(fr.xmin, fr.xmax, 5) {
		px, _ := fr.px(x, 0)
		p.dc.DrawLine(px, fr.y1(), px, fr.y1()+4)
		p.dc.DrawStringAnchored(formatTick(x), px, fr.y1()+8, 0.5, 1)
	}
	for _, y := range niceTicks(fr.ymin, fr.ymax, 5) {
		_, py := fr.px(0, y)
		p.dc.DrawLine(fr.x0-4, py, fr.x0, py)
		p.dc.DrawStringAnchored(formatTick(y), fr.x0-8, py, 1, 0.5)
	}
	p.stroke()

	p.dc.SetFont(p.labelFace)
	p.dc.DrawStringAnchored("x", fr.x0+fr.side/2, fr.y1()+40, 0.5, 1)
	p.dc.DrawStringAnchored("y", fr.x0-52, fr.y0+fr.side/2, 0.5, 0.5)

	p.dc.SetFont(p.titleFace)
	p.dc.DrawStringAnchored(p.opts.title, fr.x0+fr.side/2, fr.y0-16, 0.5, 0)
}

// drawColorbar stacks the band colours beside the plot with ψ ticks and
// the "Stream Function (ψ)" label.
func (p *painter) drawColorbar() {
	fr := p.fr
	x := fr.x1() + 16
	n := len(p.bands)
	h := fr.side / float64(n)
	for k, c := range p.bands {
		p.setColor(c)
		// band 0 at the bottom
		p.dc.DrawRectangle(x, fr.y1()-float64(k+1)*h, p.cbWidth, h+0.5)
		p.fill()
	}

	p.setColor(gg.Black)
	p.dc.SetLineWidth(1)
	p.dc.DrawRectangle(x, fr.y0, p.cbWidth, fr.side)

	lo, hi := p.levels[0], p.levels[n]
	p.dc.SetFont(p.tickFace)
	for _, v := range niceTicks(lo, hi, 6) {
		y := fr.y1() - (v-lo)/(hi-lo)*fr.side
		p.dc.DrawLine(x+p.cbWidth, y, x+p.cbWidth+4, y)
		p.dc.DrawStringAnchored(formatTick(v), x+p.cbWidth+7, y, 0, 0.5)
	}
	p.stroke()

	p.dc.SetFont(p.labelFace)
	p.dc.DrawStringAnchored("Stream Function (ψ)", x+p.cbWidth/2, fr.y0-16, 0.5, 0)
}

// overWhite composites c with the given alpha over an opaque white
// background.
func overWhite(c gg.RGBA, alpha float64) gg.RGBA {
	a := alpha * c.A
	return gg.RGBA{
		R: c.R*a + (1 - a),
		G: c.G*a + (1 - a),
		B: c.B*a + (1 - a),
		A: 1,
	}
}
