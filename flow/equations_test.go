package flow

import (
	"strings"
	"testing"

	"github.com/gogpu/flowviz/expr"
)

func TestEquations(t *testing.T) {
	for _, k := range []Pattern{Uniform{}, SourceSink{}, Vortex{}, Doublet{}, Cylinder{}} {
		lines := Equations(k)
		if len(lines) == 0 || !strings.HasPrefix(lines[0], `\psi(x, y) = `) {
			t.Errorf("%s: Equations = %q", k.Kind(), lines)
		}
	}
	if lines := Equations(Unrecognized{Tag: "x"}); lines != nil {
		t.Errorf("Unrecognized: Equations = %q, want nil", lines)
	}
}

func TestEquationsCombination(t *testing.T) {
	got := Equations(Combination{})
	if len(got) != 1 || got[0] != `\psi(x, y) = 0` {
		t.Errorf("empty combination = %q", got)
	}
	got = Equations(Combination{Uniform: true, Vortex: true})
	if !strings.Contains(got[0], `U \cdot y + \frac{\Gamma}{2\pi}`) {
		t.Errorf("combination = %q", got)
	}
}

func TestEquationsCustom(t *testing.T) {
	got := Equations(NewCustom(expr.MustParse("x**2 - y**2")))
	want := []string{
		`\psi(x, y) = x^{2} - y^{2}`,
		`u = \frac{\partial \psi}{\partial y} = -\left(2 \cdot y\right)`,
		`v = -\frac{\partial \psi}{\partial x} = -\left(2 \cdot x\right)`,
	}
	if len(got) != len(want) {
		t.Fatalf("Equations = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := Equations(Custom{Source: "x +* y"}); got != nil {
		t.Errorf("unparseable custom = %q, want nil", got)
	}
}
