// Command flowviz renders two-dimensional potential flow patterns.
//
// Render one figure:
//
//	flowviz -pattern cylinder -U 2 -radius 1.5 -o cylinder.png
//	flowviz -pattern custom -expr "sin(x)*cos(y)" -colormap RdBu -o cells.svg
//
// Serve the browser interface:
//
//	flowviz -serve :8080
//
// The output format follows the file extension: .png is drawn by the
// raster renderer, .svg, .pdf and .eps by the vector exporter.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/raster"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/chart"
	"github.com/gogpu/flowviz/colormap"
	"github.com/gogpu/flowviz/figure"
	"github.com/gogpu/flowviz/flow"
	"github.com/gogpu/flowviz/server"
)

func main() {
	defaults := flowviz.DefaultParams()
	view := flowviz.DefaultView()
	var (
		serve   = flag.String("serve", "", "serve the browser interface on this address instead of rendering")
		pattern = flag.String("pattern", defaults.Pattern, "flow pattern: "+kindList())
		u       = flag.Float64("U", defaults.U, "free stream speed")
		q       = flag.Float64("Q", defaults.Q, "source strength (negative for a sink)")
		gamma   = flag.Float64("gamma", defaults.Gamma, "vortex circulation")
		kappa   = flag.Float64("kappa", defaults.Kappa, "doublet strength")
		radius  = flag.Float64("radius", defaults.Radius, "cylinder radius")
		uniform = flag.Bool("uniform", defaults.Uniform, "combination: include uniform flow")
		source  = flag.Bool("source", defaults.Source, "combination: include the source/sink")
		vortex  = flag.Bool("vortex", defaults.Vortex, "combination: include the vortex")
		expr    = flag.String("expr", defaults.Expression, "custom stream function ψ(x, y)")
		domain  = flag.Float64("domain", flowviz.DefaultDomain, "domain size")
		points  = flag.Int("points", flowviz.DefaultPoints, "grid resolution")
		cmap    = flag.String("colormap", view.Colormap, "colormap: "+strings.Join(colormap.Names(), ", "))
		levels  = flag.Int("levels", view.ContourLevels, "number of contour levels")
		noStr   = flag.Bool("no-streamlines", false, "hide streamlines")
		strDens = flag.Int("streamline-density", view.StreamlineDensity, "streamline density")
		noVec   = flag.Bool("no-vectors", false, "hide the velocity field")
		vecDens = flag.Int("vector-density", view.VectorDensity, "vector density")
		noCont  = flag.Bool("no-contour", false, "hide the stream function contours")
		width   = flag.Int("width", 1000, "PNG width")
		height  = flag.Int("height", 800, "PNG height")
		output  = flag.String("o", "flow.png", "output file (.png, .svg, .pdf or .eps)")
		verbose = flag.Bool("v", false, "log debug diagnostics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	flowviz.SetLogger(logger)
	gg.SetLogger(logger)

	if *serve != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		s, err := server.New(server.Config{Addr: *serve, Width: *width, Height: *height})
		if err != nil {
			fatal(err)
		}
		if err := s.ListenAndServe(ctx); err != nil {
			fatal(err)
		}
		return
	}

	params := flowviz.Params{
		Pattern:    *pattern,
		U:          *u,
		Q:          *q,
		Gamma:      *gamma,
		Kappa:      *kappa,
		Radius:     *radius,
		Uniform:    *uniform,
		Source:     *source,
		Vortex:     *vortex,
		Expression: *expr,
	}
	v := flowviz.View{
		ShowStreamlines:   !*noStr,
		StreamlineDensity: *strDens,
		ShowVectors:       !*noVec,
		VectorDensity:     *vecDens,
		ShowContour:       !*noCont,
		ContourLevels:     *levels,
		Colormap:          *cmap,
	}.Normalize()
	if err := v.Validate(); err != nil {
		fatal(err)
	}
	if err := render(*output, params, *domain, *points, v, *width, *height); err != nil {
		fatal(err)
	}
}

func render(path string, params flowviz.Params, domain float64, points int, v flowviz.View, width, height int) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format != "png" && !slices.Contains(chart.Formats, format) {
		return fmt.Errorf("unsupported output %q: use .png, .svg, .pdf or .eps", path)
	}

	p, err := params.Build()
	if err != nil {
		return err
	}
	res, err := flowviz.Compute(flowviz.Request{Pattern: p, DomainSize: domain, GridPoints: points})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		slog.Warn(w)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if format == "png" {
		err = figure.Render(f, res, v, figure.WithSize(width, height))
	} else {
		err = chart.Write(f, res, v, format)
	}
	if err != nil {
		return err
	}
	slog.Info("figure saved", "file", path, "pattern", flowviz.PatternName(p))
	return nil
}

func kindList() string {
	var names []string
	for _, k := range flow.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func fatal(err error) {
	var nf *flow.NonFiniteError
	switch {
	case errors.Is(err, flowviz.ErrParse):
		fmt.Fprintln(os.Stderr, "flowviz: invalid function expression:", err)
	case errors.As(err, &nf):
		fmt.Fprintf(os.Stderr, "flowviz: the stream function has %d non-finite samples; try another expression or domain\n", nf.Count)
	default:
		fmt.Fprintln(os.Stderr, "flowviz:", err)
	}
	os.Exit(1)
}
