package flow

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon regularizes r before it is used in a logarithm or reciprocal so
// that patterns stay finite at the origin.
const Epsilon = 1e-10

// Stream is the result of evaluating a pattern.
type Stream struct {
	Psi *Field

	// Fallback is non-nil when the pattern could not be evaluated and Psi
	// is the all-zero field instead. It is an *EvaluationError for custom
	// functions that failed, or wraps ErrNoFunction / ErrUnknownPattern.
	Fallback error
}

// Evaluate computes ψ at every sample of the coordinate fields x and y.
//
// Built-in patterns always succeed. Custom and Unrecognized patterns that
// cannot be evaluated yield a zero field and a Fallback reason rather than
// an error. The only error is ErrShape for mismatched x and y.
func Evaluate(x, y *Field, p Pattern) (*Stream, error) {
	if !x.SameShape(y) {
		return nil, fmt.Errorf("%w: x is %dx%d, y is %dx%d", ErrShape, x.Rows, x.Cols, y.Rows, y.Cols)
	}
	psi := NewField(x.Rows, x.Cols)
	s := &Stream{Psi: psi}
	xs, ys, dst := x.Data, y.Data, psi.Data

	switch p := p.(type) {
	case Uniform:
		floats.ScaleTo(dst, p.U, ys)
	case SourceSink:
		addSource(dst, xs, ys, p.Q)
	case Vortex:
		addVortex(dst, xs, ys, p.Gamma)
	case Doublet:
		for i := range dst {
			r := math.Hypot(xs[i], ys[i]) + Epsilon
			theta := math.Atan2(ys[i], xs[i])
			dst[i] = -p.Kappa * math.Sin(theta) / r
		}
	case Cylinder:
		a2 := p.Radius * p.Radius
		for i := range dst {
			r := math.Hypot(xs[i], ys[i]) + Epsilon
			theta := math.Atan2(ys[i], xs[i])
			dst[i] = p.U * (r - a2/r) * math.Sin(theta)
		}
	case Combination:
		if p.Uniform {
			floats.AddScaled(dst, p.U, ys)
		}
		if p.Source {
			addSource(dst, xs, ys, p.Q)
		}
		if p.Vortex {
			addVortex(dst, xs, ys, p.Gamma)
		}
	case Custom:
		s.Fallback = evaluateCustom(dst, xs, ys, p)
	case Unrecognized:
		s.Fallback = fmt.Errorf("%w: %q", ErrUnknownPattern, p.Tag)
	default:
		s.Fallback = fmt.Errorf("%w: %T", ErrUnknownPattern, p)
	}
	return s, nil
}

func addSource(dst, xs, ys []float64, q float64) {
	k := q / (2 * math.Pi)
	for i := range dst {
		dst[i] += k * math.Atan2(ys[i], xs[i])
	}
}

func addVortex(dst, xs, ys []float64, gamma float64) {
	k := gamma / (2 * math.Pi)
	for i := range dst {
		dst[i] += k * math.Log(math.Hypot(xs[i], ys[i])+Epsilon)
	}
}

// evaluateCustom fills dst with the custom function's values. On failure
// dst is left untouched (all zero) and the reason is returned.
func evaluateCustom(dst, xs, ys []float64, c Custom) (fallback error) {
	if c.Func == nil {
		return ErrNoFunction
	}
	defer func() {
		if rec := recover(); rec != nil {
			fallback = &EvaluationError{Source: c.Source, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	out, err := c.Func(xs, ys)
	if err != nil {
		return &EvaluationError{Source: c.Source, Err: err}
	}
	if len(out) != len(dst) {
		return &EvaluationError{Source: c.Source, Err: fmt.Errorf("%w: got %d values for %d samples", ErrShape, len(out), len(dst))}
	}
	copy(dst, out)
	return nil
}
