package flow

import (
	"strings"

	"github.com/gogpu/flowviz/expr"
)

// Kind identifies a flow pattern variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindUniform
	KindSourceSink
	KindVortex
	KindDoublet
	KindCylinder
	KindCombination
	KindCustom
)

var kindInfo = [...]struct {
	slug, label string
}{
	KindUnknown:     {"unknown", "Unknown"},
	KindUniform:     {"uniform", "Uniform Flow"},
	KindSourceSink:  {"source", "Source/Sink"},
	KindVortex:      {"vortex", "Vortex"},
	KindDoublet:     {"doublet", "Doublet"},
	KindCylinder:    {"cylinder", "Cylinder in Flow"},
	KindCombination: {"combination", "Custom Combination"},
	KindCustom:      {"custom", "Custom Function"},
}

// String returns the short identifier used in URLs and flags.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return kindInfo[KindUnknown].slug
	}
	return kindInfo[k].slug
}

// Label returns the human-readable pattern name.
func (k Kind) Label() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return kindInfo[KindUnknown].label
	}
	return kindInfo[k].label
}

// Kinds returns the selectable pattern kinds in display order.
func Kinds() []Kind {
	return []Kind{KindUniform, KindSourceSink, KindVortex, KindDoublet, KindCylinder, KindCombination, KindCustom}
}

// ParseKind maps a slug ("vortex") or label ("Cylinder in Flow") to its
// Kind, ignoring case and surrounding space. Unmatched input yields
// KindUnknown.
func ParseKind(s string) Kind {
	s = strings.TrimSpace(s)
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) || strings.EqualFold(s, k.Label()) {
			return k
		}
	}
	switch strings.ToLower(s) {
	case "sink", "source-sink", "sourcesink":
		return KindSourceSink
	case "cylinder-in-flow":
		return KindCylinder
	case "custom-combination":
		return KindCombination
	case "custom-function", "function":
		return KindCustom
	}
	return KindUnknown
}

// Pattern is a flow pattern together with its parameters. The set of
// implementations is closed: Uniform, SourceSink, Vortex, Doublet,
// Cylinder, Combination, Custom and Unrecognized.
type Pattern interface {
	Kind() Kind
	pattern()
}

// Uniform is a uniform stream in +x with speed U: ψ = U·y.
type Uniform struct{ U float64 }

// SourceSink is a point source (Q > 0) or sink (Q < 0) at the origin:
// ψ = Q/2π·θ.
type SourceSink struct{ Q float64 }

// Vortex is a point vortex at the origin with circulation Gamma:
// ψ = Γ/2π·ln r.
type Vortex struct{ Gamma float64 }

// Doublet is a source-sink pair in the zero-separation limit:
// ψ = -κ·sin θ / r.
type Doublet struct{ Kappa float64 }

// Cylinder is uniform flow past a circular cylinder of the given radius:
// ψ = U·(r - a²/r)·sin θ.
type Cylinder struct{ U, Radius float64 }

// Combination superposes the uniform, source and vortex terms whose
// inclusion flag is set. Excluded terms contribute nothing regardless of
// their parameter.
type Combination struct {
	Uniform, Source, Vortex bool
	U, Q, Gamma             float64
}

// Custom is a user-supplied stream function.
type Custom struct {
	Source string
	Func   expr.Func
}

// Unrecognized stands in for a pattern tag that matched no variant. It
// always evaluates to the zero field.
type Unrecognized struct{ Tag string }

// NewCustom wraps a parsed expression.
func NewCustom(e *expr.Expr) Custom {
	return Custom{Source: e.Source(), Func: e.Func()}
}

func (Uniform) Kind() Kind      { return KindUniform }
func (SourceSink) Kind() Kind   { return KindSourceSink }
func (Vortex) Kind() Kind       { return KindVortex }
func (Doublet) Kind() Kind      { return KindDoublet }
func (Cylinder) Kind() Kind     { return KindCylinder }
func (Combination) Kind() Kind  { return KindCombination }
func (Custom) Kind() Kind       { return KindCustom }
func (Unrecognized) Kind() Kind { return KindUnknown }

func (Uniform) pattern()      {}
func (SourceSink) pattern()   {}
func (Vortex) pattern()       {}
func (Doublet) pattern()      {}
func (Cylinder) pattern()     {}
func (Combination) pattern()  {}
func (Custom) pattern()       {}
func (Unrecognized) pattern() {}
