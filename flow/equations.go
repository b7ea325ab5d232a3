package flow

import (
	"strings"

	"github.com/gogpu/flowviz/expr"
)

// Equations returns LaTeX lines describing the stream function of p and,
// where one is known, its velocity field.
func Equations(p Pattern) []string {
	switch p := p.(type) {
	case Uniform:
		return []string{
			`\psi(x, y) = U \cdot y`,
			`u = U, \quad v = 0`,
		}
	case SourceSink:
		return []string{
			`\psi(x, y) = \frac{Q}{2\pi} \cdot \theta`,
			`u = \frac{Q}{2\pi} \cdot \frac{x}{x^2 + y^2}, \quad v = \frac{Q}{2\pi} \cdot \frac{y}{x^2 + y^2}`,
		}
	case Vortex:
		return []string{
			`\psi(x, y) = \frac{\Gamma}{2\pi} \cdot \ln(r)`,
			`u = \frac{\Gamma}{2\pi} \cdot \frac{y}{x^2 + y^2}, \quad v = -\frac{\Gamma}{2\pi} \cdot \frac{x}{x^2 + y^2}`,
		}
	case Doublet:
		return []string{
			`\psi(x, y) = -\frac{\kappa \sin\theta}{r} = -\frac{\kappa y}{x^2 + y^2}`,
			`u = -\kappa \frac{x^2 - y^2}{(x^2 + y^2)^2}, \quad v = -\frac{2 \kappa x y}{(x^2 + y^2)^2}`,
		}
	case Cylinder:
		return []string{
			`\psi(x, y) = U \cdot \left(r - \frac{a^2}{r}\right) \cdot \sin\theta`,
			`r = \sqrt{x^2 + y^2}, \quad a = \text{cylinder radius}`,
		}
	case Combination:
		return combinationEquations(p)
	case Custom:
		return customEquations(p)
	}
	return nil
}

func combinationEquations(c Combination) []string {
	var terms []string
	if c.Uniform {
		terms = append(terms, `U \cdot y`)
	}
	if c.Source {
		terms = append(terms, `\frac{Q}{2\pi} \cdot \theta`)
	}
	if c.Vortex {
		terms = append(terms, `\frac{\Gamma}{2\pi} \cdot \ln(r)`)
	}
	if len(terms) == 0 {
		return []string{`\psi(x, y) = 0`}
	}
	return []string{`\psi(x, y) = ` + strings.Join(terms, " + ")}
}

func customEquations(c Custom) []string {
	e, err := expr.Parse(c.Source)
	if err != nil {
		return nil
	}
	lines := []string{`\psi(x, y) = ` + e.LaTeX()}
	dy, errY := e.Diff("y")
	dx, errX := e.Diff("x")
	if errY != nil || errX != nil {
		return lines
	}
	return append(lines,
		`u = \frac{\partial \psi}{\partial y} = `+dy.LaTeX(),
		`v = -\frac{\partial \psi}{\partial x} = `+dx.Neg().LaTeX(),
	)
}
