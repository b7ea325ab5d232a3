package flow

import (
	"errors"
	"math"
	"testing"
)

func TestNewGridInvalid(t *testing.T) {
	tests := []struct {
		size   float64
		points int
	}{
		{10, 2},
		{10, 0},
		{0, 10},
		{-1, 10},
		{math.NaN(), 10},
		{math.Inf(1), 10},
	}
	for _, tt := range tests {
		if _, err := NewGrid(tt.size, tt.points); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("NewGrid(%v, %d) error = %v, want ErrInvalidGrid", tt.size, tt.points, err)
		}
	}
}

func TestGridAxes(t *testing.T) {
	g, err := NewGrid(10, 51)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Spacing(); math.Abs(got-0.2) > 1e-15 {
		t.Errorf("Spacing() = %v, want 0.2", got)
	}
	xmin, xmax, ymin, ymax := g.Bounds()
	if xmin != -5 || xmax != 5 || ymin != -5 || ymax != 5 {
		t.Errorf("Bounds() = %v %v %v %v, want ±5", xmin, xmax, ymin, ymax)
	}
	if math.Abs(g.Xs[25]) > 1e-12 {
		t.Errorf("centre sample = %v, want 0", g.Xs[25])
	}
}

func TestGridMesh(t *testing.T) {
	g, _ := NewGrid(2, 3)
	x, y := g.Mesh()
	if x.Rows != 3 || x.Cols != 3 {
		t.Fatalf("mesh is %dx%d, want 3x3", x.Rows, x.Cols)
	}
	// first axis is y, second is x
	if x.At(0, 2) != 1 || x.At(2, 0) != -1 {
		t.Errorf("X = %v", x.Data)
	}
	if y.At(0, 2) != -1 || y.At(2, 0) != 1 {
		t.Errorf("Y = %v", y.Data)
	}
}

func TestFieldRangeAndFinite(t *testing.T) {
	f := &Field{Rows: 1, Cols: 4, Data: []float64{1, math.NaN(), -3, math.Inf(1)}}
	lo, hi, ok := f.Range()
	if !ok || lo != -3 || hi != 1 {
		t.Errorf("Range() = %v, %v, %v", lo, hi, ok)
	}
	err := CheckFinite(f)
	var nf *NonFiniteError
	if !errors.As(err, &nf) || nf.Count != 2 || nf.Total != 4 {
		t.Errorf("CheckFinite = %v", err)
	}
	if !errors.Is(err, ErrNonFinite) {
		t.Error("CheckFinite error does not wrap ErrNonFinite")
	}
	if _, _, ok := (&Field{Rows: 1, Cols: 1, Data: []float64{math.NaN()}}).Range(); ok {
		t.Error("Range() ok for all-NaN field")
	}
}
