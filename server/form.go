package server

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/flow"
)

// errForm marks a request whose query could not be read.
var errForm = errors.New("server: invalid form")

// slider describes one numeric pattern parameter of the form.
type slider struct {
	Name  string // query key
	Label string
	Help  string

	Min, Max, Step float64
}

// sliders lists the parameter controls of each pattern with the ranges of
// the original interface.
var sliders = map[flow.Kind][]slider{
	flow.KindUniform: {
		{Name: "U", Label: "Flow Speed (U)", Min: -10, Max: 10, Step: 0.1},
	},
	flow.KindSourceSink: {
		{Name: "Q", Label: "Strength (Q)", Help: "Positive for source, negative for sink", Min: -10, Max: 10, Step: 0.1},
	},
	flow.KindVortex: {
		{Name: "Gamma", Label: "Circulation (Γ)", Help: "Positive for counterclockwise, negative for clockwise", Min: -10, Max: 10, Step: 0.1},
	},
	flow.KindDoublet: {
		{Name: "kappa", Label: "Doublet Strength (κ)", Min: 0, Max: 10, Step: 0.1},
	},
	flow.KindCylinder: {
		{Name: "U", Label: "Free Stream Velocity (U)", Min: 0.1, Max: 10, Step: 0.1},
		{Name: "radius", Label: "Cylinder Radius (a)", Min: 0.5, Max: 5, Step: 0.1},
	},
	flow.KindCombination: {
		{Name: "U", Label: "Flow Speed (U)", Min: -5, Max: 5, Step: 0.1},
		{Name: "Q", Label: "Source Strength (Q)", Min: -5, Max: 5, Step: 0.1},
		{Name: "Gamma", Label: "Circulation (Γ)", Min: -5, Max: 5, Step: 0.1},
	},
}

// combinationTerms are the checkboxes of the combination pattern, each
// paired with the slider it enables.
var combinationTerms = []struct {
	Name, Label, Slider string
}{
	{"uniform", "Uniform Flow", "U"},
	{"source", "Source/Sink", "Q"},
	{"vortex", "Vortex", "Gamma"},
}

// request is a fully parsed and clamped form submission.
type request struct {
	Params flowviz.Params
	Kind   flow.Kind
	Domain float64
	Points int
	View   flowviz.View
}

// defaultRequest is the state of a fresh page.
func defaultRequest() request {
	p := flowviz.DefaultParams()
	return request{
		Params: p,
		Kind:   flow.ParseKind(p.Pattern),
		Domain: flowviz.DefaultDomain,
		Points: flowviz.DefaultPoints,
		View:   flowviz.DefaultView(),
	}
}

// parseForm reads a request from query values. Missing values keep their
// defaults; checkboxes are read as unchecked when absent from a submitted
// form (one carrying "pattern"). Numbers are clamped into the control
// ranges. Malformed numbers fail with errForm.
func parseForm(q url.Values) (request, error) {
	req := defaultRequest()
	if !q.Has("pattern") {
		return req, nil
	}
	fp := formParser{q: q}

	req.Params.Pattern = strings.TrimSpace(q.Get("pattern"))
	req.Kind = flow.ParseKind(req.Params.Pattern)
	if req.Kind != flow.KindUnknown {
		req.Params.Pattern = req.Kind.String()
	}
	for _, s := range sliders[req.Kind] {
		v := fp.float(s.Name, s.Min, s.Max)
		switch s.Name {
		case "U":
			req.Params.U = v(req.Params.U)
		case "Q":
			req.Params.Q = v(req.Params.Q)
		case "Gamma":
			req.Params.Gamma = v(req.Params.Gamma)
		case "kappa":
			req.Params.Kappa = v(req.Params.Kappa)
		case "radius":
			req.Params.Radius = v(req.Params.Radius)
		}
	}
	if req.Kind == flow.KindCombination {
		req.Params.Uniform = q.Has("uniform")
		req.Params.Source = q.Has("source")
		req.Params.Vortex = q.Has("vortex")
	}
	if q.Has("expr") {
		req.Params.Expression = q.Get("expr")
	}

	req.Domain = fp.float("domain", flowviz.MinDomainSize, flowviz.MaxDomainSize)(req.Domain)
	req.Points = fp.int("points", flowviz.MinGridPoints, flowviz.MaxGridPoints)(req.Points)

	v := &req.View
	v.ShowStreamlines = q.Has("streamlines")
	v.ShowVectors = q.Has("vectors")
	v.ShowContour = q.Has("contour")
	v.StreamlineDensity = fp.int("streamline_density", flowviz.MinStreamlineDensity, flowviz.MaxStreamlineDensity)(v.StreamlineDensity)
	v.VectorDensity = fp.int("vector_density", flowviz.MinVectorDensity, flowviz.MaxVectorDensity)(v.VectorDensity)
	v.ContourLevels = fp.int("levels", flowviz.MinContourLevels, flowviz.MaxContourLevels)(v.ContourLevels)
	if c := strings.TrimSpace(q.Get("colormap")); c != "" {
		v.Colormap = c
		if err := v.Validate(); err != nil {
			fp.fail(err)
		}
	}
	return req, fp.err
}

// formParser collects the first malformed value.
type formParser struct {
	q   url.Values
	err error
}

func (fp *formParser) fail(err error) {
	if fp.err == nil {
		fp.err = fmt.Errorf("%w: %w", errForm, err)
	}
}

// float returns a function that yields the clamped value of key, or def
// when the key is absent.
func (fp *formParser) float(key string, lo, hi float64) func(def float64) float64 {
	return func(def float64) float64 {
		s := strings.TrimSpace(fp.q.Get(key))
		if s == "" {
			return def
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			fp.fail(fmt.Errorf("%s: %q is not a number", key, s))
			return def
		}
		return math.Min(math.Max(v, lo), hi)
	}
}

func (fp *formParser) int(key string, lo, hi int) func(def int) int {
	return func(def int) int {
		s := strings.TrimSpace(fp.q.Get(key))
		if s == "" {
			return def
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			fp.fail(fmt.Errorf("%s: %q is not an integer", key, s))
			return def
		}
		return min(max(v, lo), hi)
	}
}

// Encode returns the query string that reproduces req.
func (req request) Encode() string {
	q := url.Values{}
	q.Set("pattern", req.Params.Pattern)
	for _, s := range sliders[req.Kind] {
		q.Set(s.Name, strconv.FormatFloat(req.value(s.Name), 'g', -1, 64))
	}
	if req.Kind == flow.KindCombination {
		for _, t := range combinationTerms {
			if req.checked(t.Name) {
				q.Set(t.Name, "on")
			}
		}
	}
	if req.Kind == flow.KindCustom {
		q.Set("expr", req.Params.Expression)
	}
	q.Set("domain", strconv.FormatFloat(req.Domain, 'g', -1, 64))
	q.Set("points", strconv.Itoa(req.Points))
	v := req.View
	for key, on := range map[string]bool{"streamlines": v.ShowStreamlines, "vectors": v.ShowVectors, "contour": v.ShowContour} {
		if on {
			q.Set(key, "on")
		}
	}
	q.Set("streamline_density", strconv.Itoa(v.StreamlineDensity))
	q.Set("vector_density", strconv.Itoa(v.VectorDensity))
	q.Set("levels", strconv.Itoa(v.ContourLevels))
	q.Set("colormap", v.Colormap)
	return q.Encode()
}

// value returns the pattern parameter behind a slider name.
func (req request) value(name string) float64 {
	switch name {
	case "U":
		return req.Params.U
	case "Q":
		return req.Params.Q
	case "Gamma":
		return req.Params.Gamma
	case "kappa":
		return req.Params.Kappa
	case "radius":
		return req.Params.Radius
	}
	return 0
}

func (req request) checked(term string) bool {
	switch term {
	case "uniform":
		return req.Params.Uniform
	case "source":
		return req.Params.Source
	case "vortex":
		return req.Params.Vortex
	}
	return false
}
