package flowviz

import (
	"fmt"

	"github.com/gogpu/flowviz/flow"
)

// Request describes one computation.
type Request struct {
	Pattern    flow.Pattern
	DomainSize float64
	GridPoints int
}

// Result holds everything a presentation layer needs to draw a pattern.
type Result struct {
	Pattern flow.Pattern
	Grid    *flow.Grid

	// X and Y are the coordinate meshes; row j is y = Grid.Ys[j].
	X, Y *flow.Field

	Psi   *flow.Field
	U, V  *flow.Field
	Speed *flow.Field

	// PsiMin and PsiMax bound ψ; SpeedMax is the largest speed.
	PsiMin, PsiMax float64
	SpeedMax       float64

	// Fallback is the degraded-evaluation reason, if any (see flow.Stream).
	Fallback error

	// Warnings are user-facing notes about the result.
	Warnings []string
}

// Title returns the figure title of the result.
func (r *Result) Title() string { return Title(r.Pattern) }

// Compute evaluates req.Pattern on the requested grid and derives the
// velocity field.
//
// Errors:
//   - ErrInvalidSpacing for fewer than three points or a bad domain size;
//   - ErrNonFinite (wrapping *flow.NonFiniteError) when ψ has NaN or Inf;
//   - a *RenderError matching ErrRender for anything else, including panics.
//
// A custom function that fails to evaluate is not an error: the result
// carries the zero field, a Fallback and a warning.
func Compute(req Request) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, Recovered("compute", r)
		}
	}()
	log := Logger()

	g, err := flow.NewGrid(req.DomainSize, req.GridPoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpacing, err)
	}
	x, y := g.Mesh()
	s, err := flow.Evaluate(x, y, req.Pattern)
	if err != nil {
		return nil, &RenderError{Stage: "compute", Err: err}
	}
	name := PatternName(req.Pattern)
	if err := flow.CheckFinite(s.Psi); err != nil {
		log.Warn("flowviz: non-finite stream function", "pattern", name, "err", err)
		return nil, fmt.Errorf("flowviz: %s: %w", name, err)
	}

	res = &Result{
		Pattern:  req.Pattern,
		Grid:     g,
		X:        x,
		Y:        y,
		Psi:      s.Psi,
		Fallback: s.Fallback,
	}
	res.U, res.V = flow.Gradient(s.Psi, g.Spacing())
	res.Speed = flow.Speed(res.U, res.V)
	res.PsiMin, res.PsiMax, _ = s.Psi.Range()
	_, res.SpeedMax, _ = res.Speed.Range()
	res.Warnings = warnings(req.Pattern, s)

	if s.Fallback != nil {
		log.Warn("flowviz: pattern evaluated as zero field", "pattern", name, "reason", s.Fallback)
	}
	log.Debug("flowviz: computed",
		"pattern", name,
		"points", g.Points,
		"spacing", g.Spacing(),
		"psi_min", res.PsiMin,
		"psi_max", res.PsiMax,
		"speed_max", res.SpeedMax)
	return res, nil
}

func warnings(p flow.Pattern, s *flow.Stream) []string {
	var w []string
	switch {
	case s.Fallback != nil:
		if _, ok := p.(flow.Custom); ok {
			w = append(w, fmt.Sprintf("Your function could not be evaluated (%v). Showing a zero stream function.", s.Fallback))
		} else {
			w = append(w, fmt.Sprintf("%s is not a known flow pattern. Showing a zero stream function.", PatternName(p)))
		}
	case s.Psi.IsZero():
		if _, ok := p.(flow.Custom); ok {
			w = append(w, "Your function is zero everywhere on the grid, so there is no flow to show.")
		}
	}
	return w
}
