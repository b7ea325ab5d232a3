package trace

import (
	"math"

	"github.com/gogpu/flowviz/flow"
)

// Point is a position in world coordinates.
type Point struct{ X, Y float64 }

// Lattice maps between world coordinates and fractional sample indices of
// a square grid.
type Lattice struct {
	X0, Y0     float64 // world position of sample (0, 0)
	H          float64 // spacing
	Cols, Rows int
}

// FromGrid returns the lattice of g.
func FromGrid(g *flow.Grid) Lattice {
	return Lattice{X0: g.Xs[0], Y0: g.Ys[0], H: g.Spacing(), Cols: len(g.Xs), Rows: len(g.Ys)}
}

// Index returns the fractional column and row of (x, y).
func (l Lattice) Index(x, y float64) (fi, fj float64) {
	return (x - l.X0) / l.H, (y - l.Y0) / l.H
}

// World returns the world position of fractional indices.
func (l Lattice) World(fi, fj float64) Point {
	return Point{X: l.X0 + fi*l.H, Y: l.Y0 + fj*l.H}
}

// Inside reports whether fractional indices lie within the sampled area.
func (l Lattice) Inside(fi, fj float64) bool {
	return fi >= 0 && fj >= 0 && fi <= float64(l.Cols-1) && fj <= float64(l.Rows-1)
}

// Bilinear samples f at fractional indices, clamped to the field.
func Bilinear(f *flow.Field, fi, fj float64) float64 {
	if math.IsNaN(fi) || math.IsNaN(fj) {
		return math.NaN()
	}
	fi = clampFloat(fi, 0, float64(f.Cols-1))
	fj = clampFloat(fj, 0, float64(f.Rows-1))

	i0 := min(int(math.Floor(fi)), f.Cols-1)
	j0 := min(int(math.Floor(fj)), f.Rows-1)
	i1 := min(i0+1, f.Cols-1)
	j1 := min(j0+1, f.Rows-1)
	tx, ty := fi-float64(i0), fj-float64(j0)

	return lerp2D(f.At(j0, i0), f.At(j0, i1), f.At(j1, i0), f.At(j1, i1), tx, ty)
}

// Sample evaluates f at world position (x, y).
func (l Lattice) Sample(f *flow.Field, x, y float64) float64 {
	fi, fj := l.Index(x, y)
	return Bilinear(f, fi, fj)
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 cell.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
