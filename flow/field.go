package flow

import "math"

// Field is a scalar array sampled on a grid, stored row-major.
type Field struct {
	Rows, Cols int
	Data       []float64
}

// NewField returns a zero field with the given shape.
func NewField(rows, cols int) *Field {
	return &Field{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the sample at (row, col) without bounds checking beyond the
// slice access itself.
func (f *Field) At(row, col int) float64 { return f.Data[row*f.Cols+col] }

// Set stores v at (row, col).
func (f *Field) Set(row, col int, v float64) { f.Data[row*f.Cols+col] = v }

// SameShape reports whether f and g have identical dimensions.
func (f *Field) SameShape(g *Field) bool {
	return f.Rows == g.Rows && f.Cols == g.Cols && len(f.Data) == len(g.Data)
}

// Range returns the smallest and largest finite samples. ok is false when
// the field has no finite sample.
func (f *Field) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// NonFinite returns the number of NaN or Inf samples.
func (f *Field) NonFinite() int {
	n := 0
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			n++
		}
	}
	return n
}

// IsZero reports whether every sample is exactly zero.
func (f *Field) IsZero() bool {
	for _, v := range f.Data {
		if v != 0 {
			return false
		}
	}
	return true
}

// CheckFinite returns a *NonFiniteError if f has NaN or Inf samples.
func CheckFinite(f *Field) error {
	if n := f.NonFinite(); n > 0 {
		return &NonFiniteError{Count: n, Total: len(f.Data)}
	}
	return nil
}
