package flow

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/flowviz/expr"
)

// point evaluates p at a single coordinate.
func point(t *testing.T, p Pattern, x, y float64) float64 {
	t.Helper()
	xs := &Field{Rows: 1, Cols: 1, Data: []float64{x}}
	ys := &Field{Rows: 1, Cols: 1, Data: []float64{y}}
	s, err := Evaluate(xs, ys, p)
	if err != nil {
		t.Fatalf("Evaluate(%#v) error: %v", p, err)
	}
	return s.Psi.Data[0]
}

func TestEvaluateClosedForms(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
		x, y float64
		want float64
		tol  float64
	}{
		{"uniform", Uniform{U: 2}, 0, 3, 6, 0},
		{"uniform negative", Uniform{U: -1.5}, 7, 2, -3, 0},
		{"source", SourceSink{Q: 2 * math.Pi}, 0, 1, math.Pi / 2, 1e-12},
		{"sink", SourceSink{Q: -4}, -1, 0, -4 / (2 * math.Pi) * math.Pi, 1e-12},
		{"vortex", Vortex{Gamma: 2 * math.Pi}, 3, 4, math.Log(5), 1e-9},
		{"doublet", Doublet{Kappa: 2}, 0, 2, -1, 1e-9},
		{"cylinder", Cylinder{U: 1, Radius: 1}, 0, 2, 1.5, 1e-9},
		{"cylinder surface", Cylinder{U: 3, Radius: 2}, 0, 2, 0, 1e-9},
		{"combination", Combination{Uniform: true, U: 2, Source: true, Q: 2 * math.Pi, Vortex: true, Gamma: 2 * math.Pi}, 0, 1, 2 + math.Pi/2, 1e-9},
		{"combination uniform only", Combination{Uniform: true, U: 2, Q: 9, Gamma: 9}, 0, 3, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := point(t, tt.p, tt.x, tt.y)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("ψ(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestEvaluateFiniteAtOrigin(t *testing.T) {
	patterns := []Pattern{
		SourceSink{Q: 5},
		Vortex{Gamma: 5},
		Doublet{Kappa: 5},
		Cylinder{U: 1, Radius: 1},
		Combination{Uniform: true, Source: true, Vortex: true, U: 1, Q: 1, Gamma: 1},
	}
	for _, p := range patterns {
		got := point(t, p, 0, 0)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("%s at origin = %v, want finite", p.Kind(), got)
		}
	}
}

func TestEvaluateCombinationNoTerms(t *testing.T) {
	g, err := NewGrid(10, 21)
	if err != nil {
		t.Fatal(err)
	}
	x, y := g.Mesh()
	s, err := Evaluate(x, y, Combination{U: 3, Q: -7, Gamma: 11})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Psi.IsZero() {
		t.Error("combination with no terms is not the zero field")
	}
	if s.Fallback != nil {
		t.Errorf("Fallback = %v, want nil", s.Fallback)
	}
}

func TestEvaluateShape(t *testing.T) {
	g, _ := NewGrid(4, 5)
	x, y := g.Mesh()
	s, err := Evaluate(x, y, Vortex{Gamma: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Psi.SameShape(x) {
		t.Errorf("psi is %dx%d, want %dx%d", s.Psi.Rows, s.Psi.Cols, x.Rows, x.Cols)
	}

	_, err = Evaluate(x, NewField(2, 2), Vortex{Gamma: 1})
	if !errors.Is(err, ErrShape) {
		t.Errorf("mismatched shapes error = %v, want ErrShape", err)
	}
}

func TestEvaluateUnrecognized(t *testing.T) {
	g, _ := NewGrid(4, 5)
	x, y := g.Mesh()
	for _, p := range []Pattern{Unrecognized{Tag: "Rankine Oval"}, nil} {
		s, err := Evaluate(x, y, p)
		if err != nil {
			t.Fatalf("Evaluate(%v) error: %v", p, err)
		}
		if !s.Psi.IsZero() {
			t.Errorf("Evaluate(%v) is not the zero field", p)
		}
		if !errors.Is(s.Fallback, ErrUnknownPattern) {
			t.Errorf("Fallback = %v, want ErrUnknownPattern", s.Fallback)
		}
	}
}

func TestEvaluateCustom(t *testing.T) {
	g, _ := NewGrid(4, 5)
	x, y := g.Mesh()
	s, err := Evaluate(x, y, NewCustom(expr.MustParse("x*y")))
	if err != nil {
		t.Fatal(err)
	}
	if s.Fallback != nil {
		t.Fatalf("Fallback = %v", s.Fallback)
	}
	for k := range s.Psi.Data {
		if want := x.Data[k] * y.Data[k]; s.Psi.Data[k] != want {
			t.Fatalf("psi[%d] = %v, want %v", k, s.Psi.Data[k], want)
		}
	}
}

func TestEvaluateCustomFallback(t *testing.T) {
	g, _ := NewGrid(4, 5)
	x, y := g.Mesh()
	boom := errors.New("boom")

	tests := []struct {
		name string
		p    Custom
		want error
	}{
		{"nil func", Custom{Source: "x"}, ErrNoFunction},
		{"error", Custom{Source: "f", Func: func(_, _ []float64) ([]float64, error) { return nil, boom }}, boom},
		{"short", Custom{Source: "f", Func: func(_, _ []float64) ([]float64, error) { return []float64{1}, nil }}, ErrShape},
		{"panic", Custom{Source: "f", Func: func(_, _ []float64) ([]float64, error) { panic("bad") }}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Evaluate(x, y, tt.p)
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}
			if !s.Psi.IsZero() {
				t.Error("fallback field is not zero")
			}
			if s.Fallback == nil {
				t.Fatal("Fallback = nil")
			}
			if tt.want != nil && !errors.Is(s.Fallback, tt.want) {
				t.Errorf("Fallback = %v, want %v", s.Fallback, tt.want)
			}
			if tt.name != "nil func" {
				var ee *EvaluationError
				if !errors.As(s.Fallback, &ee) {
					t.Errorf("Fallback %T is not *EvaluationError", s.Fallback)
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"uniform", KindUniform},
		{"Uniform Flow", KindUniform},
		{"Source/Sink", KindSourceSink},
		{"sink", KindSourceSink},
		{" VORTEX ", KindVortex},
		{"doublet", KindDoublet},
		{"Cylinder in Flow", KindCylinder},
		{"Custom Combination", KindCombination},
		{"custom", KindCustom},
		{"Custom Function", KindCustom},
		{"rankine", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		if got := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
		if got := ParseKind(k.Label()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.Label(), got, k)
		}
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}
