package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/chart"
	"github.com/gogpu/flowviz/colormap"
	"github.com/gogpu/flowviz/expr"
	"github.com/gogpu/flowviz/figure"
	"github.com/gogpu/flowviz/flow"
)

var funcs = template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
}

// compute builds the pattern of req and runs the pipeline.
func compute(req request) (*flowviz.Result, error) {
	p, err := req.Params.Build()
	if err != nil {
		return nil, err
	}
	return flowviz.Compute(flowviz.Request{Pattern: p, DomainSize: req.Domain, GridPoints: req.Points})
}

// computeForm parses the query of r and computes it.
func computeForm(r *http.Request) (request, *flowviz.Result, error) {
	req, err := parseForm(r.URL.Query())
	if err != nil {
		return req, nil, err
	}
	res, err := compute(req)
	return req, res, err
}

func logFailure(r *http.Request, code int, err error) {
	log := flowviz.Logger()
	if code >= http.StatusInternalServerError {
		log.Error("server: request failed", "path", r.URL.Path, "status", code, "err", err)
		return
	}
	log.Debug("server: request rejected", "path", r.URL.Path, "status", code, "err", err)
}

// sliderField is a slider with its current value, as the template sees it.
type sliderField struct {
	slider
	Value float64
}

type termField struct {
	Name, Label string
	Checked     bool
	Slider      sliderField
}

type page struct {
	Req       request
	Kinds     []flow.Kind
	Sliders   []sliderField
	Terms     []termField
	Examples  []struct{ Label, Expression string }
	Colormaps []string
	Limits    map[string]float64

	Parsed     bool
	ParseError string
	Error      string
	Warnings   []string
	Equations  []string
	Stats      string
	PlotURL    template.URL
	SVGURL     template.URL
	Version    string
}

func newPage(req request) *page {
	pg := &page{
		Req:       req,
		Kinds:     flow.Kinds(),
		Examples:  flowviz.Examples,
		Colormaps: colormap.Names(),
		Version:   flowviz.Version,
		Limits: map[string]float64{
			"DomainMin":  flowviz.MinDomainSize,
			"DomainMax":  flowviz.MaxDomainSize,
			"DomainStep": flowviz.DomainSizeStep,
			"PointsMin":  flowviz.MinGridPoints,
			"PointsMax":  flowviz.MaxGridPoints,
			"PointsStep": flowviz.GridPointsStep,
			"StreamMin":  flowviz.MinStreamlineDensity,
			"StreamMax":  flowviz.MaxStreamlineDensity,
			"VectorMin":  flowviz.MinVectorDensity,
			"VectorMax":  flowviz.MaxVectorDensity,
			"LevelsMin":  flowviz.MinContourLevels,
			"LevelsMax":  flowviz.MaxContourLevels,
		},
	}
	byName := map[string]sliderField{}
	for _, s := range sliders[req.Kind] {
		f := sliderField{slider: s, Value: req.value(s.Name)}
		byName[s.Name] = f
		if req.Kind != flow.KindCombination {
			pg.Sliders = append(pg.Sliders, f)
		}
	}
	if req.Kind == flow.KindCombination {
		for _, t := range combinationTerms {
			pg.Terms = append(pg.Terms, termField{
				Name: t.Name, Label: t.Label,
				Checked: req.checked(t.Name),
				Slider:  byName[t.Slider],
			})
		}
	}
	q := req.Encode()
	pg.PlotURL = template.URL("/plot.png?" + q)
	pg.SVGURL = template.URL("/plot.svg?" + q)
	return pg
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	req, err := parseForm(r.URL.Query())
	pg := newPage(req)
	if err == nil && req.Kind == flow.KindCustom {
		_, perr := flowviz.ParseExpression(req.Params.Expression)
		pg.Parsed = perr == nil
		if perr != nil {
			pg.ParseError = perr.Error()
		}
	}
	var res *flowviz.Result
	if err == nil {
		res, err = compute(req)
	}
	if err != nil {
		code, pg.Error = status(err)
		logFailure(r, code, err)
	} else {
		pg.Warnings = res.Warnings
		pg.Equations = flow.Equations(res.Pattern)
		pg.Stats = stats(res)
	}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, pg); err != nil {
		flowviz.Logger().Error("server: template", "err", err)
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// stats summarises res for the page, with numbers formatted for English.
func stats(res *flowviz.Result) string {
	p := message.NewPrinter(language.English)
	n := res.Grid.Points
	return p.Sprintf("%d × %d grid (%d samples), spacing %.3f; ψ from %.3f to %.3f; maximum speed %.3f",
		n, n, n*n, res.Grid.Spacing(), res.PsiMin, res.PsiMax, res.SpeedMax)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	req, res, err := computeForm(r)
	var buf bytes.Buffer
	if err == nil {
		err = figure.Render(&buf, res, req.View, s.cfg.figureOptions()...)
	}
	s.writeImage(w, r, "image/png", &buf, err)
}

func (s *Server) handleVector(format string) http.HandlerFunc {
	ctype := map[string]string{
		"svg": "image/svg+xml",
		"pdf": "application/pdf",
		"eps": "application/postscript",
	}[format]
	return func(w http.ResponseWriter, r *http.Request) {
		req, res, err := computeForm(r)
		var buf bytes.Buffer
		if err == nil {
			err = chart.Write(&buf, res, req.View, format)
		}
		s.writeImage(w, r, ctype, &buf, err)
	}
}

func (s *Server) writeImage(w http.ResponseWriter, r *http.Request, ctype string, buf *bytes.Buffer, err error) {
	if err != nil {
		code, msg := status(err)
		logFailure(r, code, err)
		http.Error(w, msg, code)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

type fieldResponse struct {
	Pattern  string      `json:"pattern"`
	X        []float64   `json:"x"`
	Y        []float64   `json:"y"`
	Psi      [][]float64 `json:"psi"`
	U        [][]float64 `json:"u"`
	V        [][]float64 `json:"v"`
	PsiMin   float64     `json:"psi_min"`
	PsiMax   float64     `json:"psi_max"`
	SpeedMax float64     `json:"speed_max"`
	Warnings []string    `json:"warnings,omitempty"`

	// VelocityError is the largest interior deviation of (u, v) from the
	// closed-form velocity; absent for custom and unknown patterns.
	VelocityError *float64 `json:"velocity_error,omitempty"`
}

// rows splits a field into its rows; row j is y = Y[j].
func rows(f *flow.Field) [][]float64 {
	out := make([][]float64, f.Rows)
	for j := range out {
		out[j] = f.Data[j*f.Cols : (j+1)*f.Cols]
	}
	return out
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	_, res, err := computeForm(r)
	if err != nil {
		code, msg := status(err)
		logFailure(r, code, err)
		writeJSON(w, code, map[string]string{"error": msg})
		return
	}
	resp := fieldResponse{
		Pattern:  flowviz.PatternName(res.Pattern),
		X:        res.Grid.Xs,
		Y:        res.Grid.Ys,
		Psi:      rows(res.Psi),
		U:        rows(res.U),
		V:        rows(res.V),
		PsiMin:   res.PsiMin,
		PsiMax:   res.PsiMax,
		SpeedMax: res.SpeedMax,
		Warnings: res.Warnings,
	}
	if e, ok := flow.VelocityError(res.Pattern, res.Grid, res.U, res.V); ok {
		resp.VelocityError = &e
	}
	writeJSON(w, http.StatusOK, resp)
}

type parseResponse struct {
	OK         bool     `json:"ok"`
	Expression string   `json:"expression,omitempty"`
	Equations  []string `json:"equations,omitempty"`
	Error      string   `json:"error,omitempty"`
	Detail     string   `json:"detail,omitempty"`
	Position   *int     `json:"position,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	e, err := flowviz.ParseExpression(r.URL.Query().Get("expr"))
	if err != nil {
		resp := parseResponse{Error: msgParse, Detail: err.Error()}
		var se *expr.SyntaxError
		if errors.As(err, &se) {
			pos := se.Pos
			resp.Position = &pos
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{
		OK:         true,
		Expression: e.String(),
		Equations:  flow.Equations(flow.NewCustom(e)),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": flowviz.Version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
