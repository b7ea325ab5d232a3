package expr

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Func evaluates a compiled expression element-wise: out[i] = f(x[i], y[i]).
// The input slices are never modified.
type Func func(x, y []float64) ([]float64, error)

// env holds the coordinate slices for one evaluation. The polar slices
// are computed on first use.
type env struct {
	x, y     []float64
	r, theta []float64
}

func (e *env) radius() []float64 {
	if e.r == nil {
		e.r = make([]float64, len(e.x))
		for i := range e.r {
			e.r[i] = math.Hypot(e.x[i], e.y[i])
		}
	}
	return e.r
}

func (e *env) angle() []float64 {
	if e.theta == nil {
		e.theta = make([]float64, len(e.x))
		for i := range e.theta {
			e.theta[i] = math.Atan2(e.y[i], e.x[i])
		}
	}
	return e.theta
}

// kernel produces the values of one subtree. Kernels for variables return
// the environment slices themselves; every other kernel allocates.
type kernel func(e *env) []float64

func compile(n node) kernel {
	if !dependsOnCoordinates(n) {
		v := evalAt(n, 0, 0)
		return func(e *env) []float64 { return fill(len(e.x), v) }
	}
	switch n := n.(type) {
	case variable:
		return compileVariable(n)
	case neg:
		k := compile(n.x)
		return func(e *env) []float64 {
			s := k(e)
			return floats.ScaleTo(make([]float64, len(s)), -1, s)
		}
	case binary:
		return compileBinary(n)
	case call:
		return compileCall(n)
	}
	panic("expr: unhandled node in compile")
}

func compileVariable(v variable) kernel {
	switch v.name {
	case "x":
		return func(e *env) []float64 { return e.x }
	case "y":
		return func(e *env) []float64 { return e.y }
	case "r":
		return (*env).radius
	default:
		return (*env).angle
	}
}

func compileBinary(b binary) kernel {
	kl, kr := compile(b.l), compile(b.r)
	var op func(dst, s, t []float64) []float64
	switch b.op {
	case '+':
		op = floats.AddTo
	case '-':
		op = floats.SubTo
	case '*':
		op = floats.MulTo
	case '/':
		op = floats.DivTo
	default:
		op = powTo
	}
	return func(e *env) []float64 {
		s, t := kl(e), kr(e)
		return op(make([]float64, len(s)), s, t)
	}
}

func compileCall(c call) kernel {
	ks := make([]kernel, len(c.args))
	for i, a := range c.args {
		ks[i] = compile(a)
	}
	fn := c.fn
	if len(ks) == 1 {
		k := ks[0]
		return func(e *env) []float64 {
			s := k(e)
			dst := make([]float64, len(s))
			for i, v := range s {
				dst[i] = fn.f1(v)
			}
			return dst
		}
	}
	k0, k1 := ks[0], ks[1]
	return func(e *env) []float64 {
		a, b := k0(e), k1(e)
		dst := make([]float64, len(a))
		for i := range dst {
			dst[i] = fn.f2(a[i], b[i])
		}
		return dst
	}
}

func powTo(dst, s, t []float64) []float64 {
	for i := range dst {
		dst[i] = math.Pow(s[i], t[i])
	}
	return dst
}

func fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// evalAt evaluates n at a single point.
func evalAt(n node, x, y float64) float64 {
	switch n := n.(type) {
	case num:
		return n.v
	case constant:
		return n.v
	case variable:
		switch n.name {
		case "x":
			return x
		case "y":
			return y
		case "r":
			return math.Hypot(x, y)
		default:
			return math.Atan2(y, x)
		}
	case neg:
		return -evalAt(n.x, x, y)
	case binary:
		a, b := evalAt(n.l, x, y), evalAt(n.r, x, y)
		switch n.op {
		case '+':
			return a + b
		case '-':
			return a - b
		case '*':
			return a * b
		case '/':
			return a / b
		default:
			return math.Pow(a, b)
		}
	case call:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			args[i] = evalAt(a, x, y)
		}
		return n.fn.apply(args)
	}
	panic("expr: unhandled node in eval")
}

func dependsOnCoordinates(n node) bool {
	switch n := n.(type) {
	case variable:
		return true
	case neg:
		return dependsOnCoordinates(n.x)
	case binary:
		return dependsOnCoordinates(n.l) || dependsOnCoordinates(n.r)
	case call:
		for _, a := range n.args {
			if dependsOnCoordinates(a) {
				return true
			}
		}
	}
	return false
}

func collectVariables(n node, out map[string]bool) {
	switch n := n.(type) {
	case variable:
		out[n.name] = true
	case neg:
		collectVariables(n.x, out)
	case binary:
		collectVariables(n.l, out)
		collectVariables(n.r, out)
	case call:
		for _, a := range n.args {
			collectVariables(a, out)
		}
	}
}
