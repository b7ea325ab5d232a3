package chart

import (
	"math"

	"gonum.org/v1/plot/plotter"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/flow"
	"github.com/gogpu/flowviz/internal/trace"
)

// psiGrid exposes ψ as a plotter.GridXYZ. Column c is x = Xs[c], row r is
// y = Ys[r].
type psiGrid struct{ res *flowviz.Result }

func (g psiGrid) Dims() (c, r int)   { return g.res.Psi.Cols, g.res.Psi.Rows }
func (g psiGrid) Z(c, r int) float64 { return g.res.Psi.At(r, c) }
func (g psiGrid) X(c int) float64    { return g.res.Grid.Xs[c] }
func (g psiGrid) Y(r int) float64    { return g.res.Grid.Ys[r] }
func (g psiGrid) Min() float64       { return g.res.PsiMin }
func (g psiGrid) Max() float64       { return g.res.PsiMax }

// bandGrid replaces each ψ sample with the index of its contour band, so a
// heat map with one palette entry per band draws filled contours.
type bandGrid struct {
	psiGrid
	levels []float64
}

func (g bandGrid) Z(c, r int) float64 { return float64(trace.Band(g.levels, g.psiGrid.Z(c, r))) }
func (g bandGrid) Min() float64       { return 0 }
func (g bandGrid) Max() float64       { return float64(len(g.levels) - 2) }

// quiverField exposes every step-th velocity sample as a plotter.FieldXY.
type quiverField struct {
	u, v   *flow.Field
	xs, ys []float64
	step   int
}

func (q quiverField) Dims() (c, r int) {
	return (len(q.xs) + q.step - 1) / q.step, (len(q.ys) + q.step - 1) / q.step
}

func (q quiverField) Vector(c, r int) plotter.XY {
	return plotter.XY{X: q.u.At(r*q.step, c*q.step), Y: q.v.At(r*q.step, c*q.step)}
}

func (q quiverField) X(c int) float64 { return q.xs[c*q.step] }
func (q quiverField) Y(r int) float64 { return q.ys[r*q.step] }

func (q quiverField) maxSpeed() float64 {
	var m float64
	cols, rows := q.Dims()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v := q.Vector(c, r)
			m = math.Max(m, math.Hypot(v.X, v.Y))
		}
	}
	return m
}

var (
	_ plotter.GridXYZ = psiGrid{}
	_ plotter.GridXYZ = bandGrid{}
	_ plotter.FieldXY = quiverField{}
)
