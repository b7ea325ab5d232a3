package expr

import (
	"fmt"
	"slices"
	"sort"
)

// Expr is a parsed expression. It is immutable and safe for concurrent use.
type Expr struct {
	src  string
	root node
}

// Parse parses src into an expression over x and y.
//
// On failure Parse returns a nil *Expr and an error wrapping one of
// ErrEmpty, ErrSyntax, ErrUnknownIdentifier or ErrArity. The returned
// error is a *SyntaxError carrying the byte offset of the problem.
// No attempt is made to repair the input.
func Parse(src string) (*Expr, error) {
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root}, nil
}

// MustParse is like Parse but panics on error. It is intended for
// expressions known at compile time.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string { return e.src }

// String returns a canonical rendering of the expression tree.
func (e *Expr) String() string { return toString(e.root) }

// LaTeX returns the expression in LaTeX math notation.
func (e *Expr) LaTeX() string { return latex(e.root) }

// Vars returns the sorted variable names referenced by the expression,
// including the derived names r and theta.
func (e *Expr) Vars() []string {
	set := make(map[string]bool)
	collectVariables(e.root, set)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Diff returns the partial derivative with respect to x or y.
func (e *Expr) Diff(name string) (*Expr, error) {
	if name != "x" && name != "y" {
		return nil, fmt.Errorf("%w: cannot differentiate with respect to %q", ErrUnknownIdentifier, name)
	}
	d := diff(e.root, name)
	return &Expr{src: toString(d), root: d}, nil
}

// Neg returns the negated expression.
func (e *Expr) Neg() *Expr {
	n := mkNeg(e.root)
	return &Expr{src: toString(n), root: n}
}

// Eval evaluates the expression at a single point.
func (e *Expr) Eval(x, y float64) float64 {
	return evalAt(e.root, x, y)
}

// Func compiles the expression into a vectorized evaluator.
//
// A panic raised while evaluating is returned as an *EvalError.
func (e *Expr) Func() Func {
	k := compile(e.root)
	_, bare := e.root.(variable)
	return func(x, y []float64) (out []float64, err error) {
		if len(x) != len(y) {
			return nil, fmt.Errorf("%w: %d != %d", ErrLength, len(x), len(y))
		}
		defer func() {
			if rec := recover(); rec != nil {
				out, err = nil, &EvalError{Source: e.src, Cause: rec}
			}
		}()
		out = k(&env{x: x, y: y})
		if bare {
			out = slices.Clone(out)
		}
		return out, nil
	}
}
