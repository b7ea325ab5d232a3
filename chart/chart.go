// Package chart exports flow figures as vector or raster documents using
// gonum.org/v1/plot.
//
// The figure carries the same layers as the raster renderer in package
// figure: a banded ψ heat map with isolines, a dashed grid, streamlines with
// direction markers, a vector field, the cylinder outline and a colour bar
// labelled "Stream Function (ψ)".
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"slices"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Canvas formats accepted by Write.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/colormap"
	"github.com/gogpu/flowviz/internal/trace"
)

// Page size of an exported figure.
const (
	Width  = 10 * vg.Inch
	Height = 8 * vg.Inch
)

const (
	colorbarWidth = 1.4 * vg.Inch
	contourAlpha  = 0.7
)

// Formats lists the document formats Write accepts.
var Formats = []string{"eps", "pdf", "png", "svg"}

var (
	// ErrFormat is returned for a format not listed in Formats.
	ErrFormat = errors.New("chart: unsupported format")

	// ErrNoResult is returned when Write is called without a result.
	ErrNoResult = errors.New("chart: nil result")
)

// Write draws res according to view and writes it to w in the given format
// ("svg", "pdf", "eps" or "png"; a leading dot and case are ignored).
//
// Panics raised while drawing are returned as a *flowviz.RenderError.
func Write(w io.Writer, res *flowviz.Result, view flowviz.View, format string) (err error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if res == nil {
		return ErrNoResult
	}
	defer func() {
		if r := recover(); r != nil {
			err = flowviz.Recovered("chart", r)
		}
	}()

	view = view.Normalize()
	cmap, ok := colormap.Lookup(view.Colormap)
	if !ok {
		flowviz.Logger().Warn("chart: unknown colormap, using default", "colormap", view.Colormap)
		cmap = colormap.Get(colormap.Default)
	}
	levels := trace.Levels(res.PsiMin, res.PsiMax, view.ContourLevels)

	c, err := draw.NewFormattedCanvas(Width, Height, format)
	if err != nil {
		return &flowviz.RenderError{Stage: "chart", Err: err}
	}
	dc := draw.New(c)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	area := dc
	if view.ShowContour {
		area = draw.Crop(dc, 0, -colorbarWidth, 0, 0)
		cb := colorbarPlot(cmap, levels)
		pad := vg.Points(12)
		cb.Draw(draw.Crop(dc, Width-colorbarWidth+pad, -pad, vg.Points(64), -vg.Points(48)))
	}
	p, err := fieldPlot(res, view, cmap, levels)
	if err != nil {
		return &flowviz.RenderError{Stage: "chart", Err: err}
	}
	p.Draw(square(area))

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("chart: write %s: %w", format, err)
	}
	flowviz.Logger().Debug("chart: rendered",
		"pattern", flowviz.PatternName(res.Pattern),
		"format", format,
		"colormap", cmap.Name())
	return nil
}

// square returns the largest centred square inside c, so both axes share
// one scale.
func square(c draw.Canvas) draw.Canvas {
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	if w > h {
		d := (w - h) / 2
		return draw.Crop(c, d, -d, 0, 0)
	}
	d := (h - w) / 2
	return draw.Crop(c, 0, 0, d, -d)
}
