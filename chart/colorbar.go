package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gogpu/flowviz/colormap"
)

// colorBar draws one filled rectangle per ψ band on the unit x range.
// Bands must stay vector paths: the EPS canvas has no DrawImage and the
// PDF canvas rejects 16-bit images.
type colorBar struct {
	cmap   palette.ColorMap
	levels []float64
}

var (
	_ plot.Plotter    = colorBar{}
	_ plot.DataRanger = colorBar{}
)

func (b colorBar) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x0, x1 := trX(0), trX(1)
	for k := 0; k+1 < len(b.levels); k++ {
		lo, hi := b.levels[k], b.levels[k+1]
		col, err := b.cmap.At((lo + hi) / 2)
		if err != nil {
			continue
		}
		y0, y1 := trY(lo), trY(hi)
		c.FillPolygon(col, []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
	}
}

func (b colorBar) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.levels) == 0 {
		return 0, 1, 0, 1
	}
	return 0, 1, b.levels[0], b.levels[len(b.levels)-1]
}

// colorbarPlot shows the ψ bands of the heat map on a vertical scale.
func colorbarPlot(cmap *colormap.Map, levels []float64) *plot.Plot {
	n := len(levels) - 1
	s := cmap.Scaled(levels[0], levels[n]).Banded(n)
	s.SetAlpha(contourAlpha)

	p := plot.New()
	p.Add(colorBar{cmap: s, levels: levels})
	p.HideX()
	p.Y.Label.Text = "Stream Function (ψ)"
	p.Y.Padding = 0
	return p
}
