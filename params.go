package flowviz

import (
	"fmt"

	"github.com/gogpu/flowviz/expr"
	"github.com/gogpu/flowviz/flow"
)

// Params is the flat, form-shaped description of a pattern as entered in
// the browser interface or on the command line. Only the fields relevant
// to the selected pattern are read.
type Params struct {
	// Pattern is a kind slug or label; see flow.ParseKind.
	Pattern string

	U, Q, Gamma, Kappa, Radius float64

	// Combination term toggles.
	Uniform, Source, Vortex bool

	// Expression is the custom stream function source.
	Expression string
}

// DefaultParams returns the initial parameter values of the interface.
func DefaultParams() Params {
	return Params{
		Pattern:    flow.KindUniform.String(),
		U:          1,
		Q:          5,
		Gamma:      5,
		Kappa:      5,
		Radius:     1,
		Uniform:    true,
		Expression: "x*y",
	}
}

// Examples are the shortcut expressions offered for custom stream functions.
var Examples = []struct {
	Label, Expression string
}{
	{"sin(x)", "sin(x)"},
	{"cos(y)", "cos(y)"},
	{"x²-y²", "x**2 - y**2"},
	{"x*y", "x*y"},
	{"log(r)", "log(sqrt(x**2 + y**2))"},
	{"sin(x)*cos(y)", "sin(x)*cos(y)"},
	{"r*sin(theta)", "r*sin(theta)"},
	{"r²*sin(2*theta)", "r**2*sin(2*theta)"},
}

// Build turns p into a flow.Pattern. A custom expression that does not
// parse yields an error wrapping ErrParse and the parser's error. An
// unmatched pattern name yields flow.Unrecognized.
func (p Params) Build() (flow.Pattern, error) {
	switch flow.ParseKind(p.Pattern) {
	case flow.KindUniform:
		return flow.Uniform{U: p.U}, nil
	case flow.KindSourceSink:
		return flow.SourceSink{Q: p.Q}, nil
	case flow.KindVortex:
		return flow.Vortex{Gamma: p.Gamma}, nil
	case flow.KindDoublet:
		return flow.Doublet{Kappa: p.Kappa}, nil
	case flow.KindCylinder:
		return flow.Cylinder{U: p.U, Radius: p.Radius}, nil
	case flow.KindCombination:
		return flow.Combination{
			Uniform: p.Uniform, Source: p.Source, Vortex: p.Vortex,
			U: p.U, Q: p.Q, Gamma: p.Gamma,
		}, nil
	case flow.KindCustom:
		e, err := ParseExpression(p.Expression)
		if err != nil {
			return nil, err
		}
		return flow.NewCustom(e), nil
	}
	return flow.Unrecognized{Tag: p.Pattern}, nil
}

// ParseExpression parses a custom stream function, wrapping failures in
// ErrParse. Error positions are byte offsets into src.
func ParseExpression(src string) (*expr.Expr, error) {
	e, err := expr.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return e, nil
}
