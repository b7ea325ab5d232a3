package flow

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MinPoints is the smallest resolution for which central differences
// leave at least one interior sample.
const MinPoints = 3

// Grid is a square lattice of Points x Points samples spanning
// [-Size/2, Size/2] on both axes. A Grid is immutable once built.
type Grid struct {
	Size   float64
	Points int

	// Xs and Ys are the increasing axis samples.
	Xs, Ys []float64
}

// NewGrid builds the sample lattice for a domain of side size.
func NewGrid(size float64, points int) (*Grid, error) {
	if points < MinPoints {
		return nil, fmt.Errorf("%w: resolution %d is below %d", ErrInvalidGrid, points, MinPoints)
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: domain size %v", ErrInvalidGrid, size)
	}
	half := size / 2
	return &Grid{
		Size:   size,
		Points: points,
		Xs:     floats.Span(make([]float64, points), -half, half),
		Ys:     floats.Span(make([]float64, points), -half, half),
	}, nil
}

// Spacing returns the distance between neighbouring samples,
// Size / (Points - 1).
func (g *Grid) Spacing() float64 {
	return g.Size / float64(g.Points-1)
}

// Bounds returns the domain extent.
func (g *Grid) Bounds() (xmin, xmax, ymin, ymax float64) {
	return g.Xs[0], g.Xs[len(g.Xs)-1], g.Ys[0], g.Ys[len(g.Ys)-1]
}

// Mesh returns the coordinate fields X and Y, where X.At(j, i) = Xs[i]
// and Y.At(j, i) = Ys[j].
func (g *Grid) Mesh() (x, y *Field) {
	rows, cols := len(g.Ys), len(g.Xs)
	x, y = NewField(rows, cols), NewField(rows, cols)
	for j := 0; j < rows; j++ {
		copy(x.Data[j*cols:(j+1)*cols], g.Xs)
		row := y.Data[j*cols : (j+1)*cols]
		for i := range row {
			row[i] = g.Ys[j]
		}
	}
	return x, y
}
