package flowviz

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/flowviz/colormap"
	"github.com/gogpu/flowviz/flow"
)

// Density and level bounds of the view controls.
const (
	MinStreamlineDensity = 5
	MaxStreamlineDensity = 40
	MinVectorDensity     = 5
	MaxVectorDensity     = 40
	MinContourLevels     = 5
	MaxContourLevels     = 50
)

// Domain bounds of the interface controls.
const (
	MinDomainSize  = 2.0
	MaxDomainSize  = 20.0
	MinGridPoints  = 20
	MaxGridPoints  = 100
	DefaultDomain  = 10.0
	DefaultPoints  = 50
	DomainSizeStep = 0.5
	GridPointsStep = 5
)

// View holds the visual settings of a figure.
type View struct {
	ShowStreamlines   bool
	StreamlineDensity int

	ShowVectors   bool
	VectorDensity int

	ShowContour   bool
	ContourLevels int

	Colormap string
}

// DefaultView returns the settings the interface starts with.
func DefaultView() View {
	return View{
		ShowStreamlines:   true,
		StreamlineDensity: 20,
		ShowVectors:       true,
		VectorDensity:     15,
		ShowContour:       true,
		ContourLevels:     20,
		Colormap:          colormap.Default,
	}
}

// Normalize clamps densities and levels into their ranges and fills an
// empty colormap name with the default.
func (v View) Normalize() View {
	v.StreamlineDensity = clamp(v.StreamlineDensity, MinStreamlineDensity, MaxStreamlineDensity)
	v.VectorDensity = clamp(v.VectorDensity, MinVectorDensity, MaxVectorDensity)
	v.ContourLevels = clamp(v.ContourLevels, MinContourLevels, MaxContourLevels)
	if strings.TrimSpace(v.Colormap) == "" {
		v.Colormap = colormap.Default
	}
	return v
}

// Validate reports an unknown colormap.
func (v View) Validate() error {
	if _, ok := colormap.Lookup(v.Colormap); !ok {
		return fmt.Errorf("%w: unknown colormap %q", ErrInvalidView, v.Colormap)
	}
	return nil
}

// QuiverStep returns the subsampling stride of the vector plot for a
// grid of the given resolution. It is never below 1.
func (v View) QuiverStep(points int) int {
	d := v.VectorDensity
	if d <= 0 {
		d = DefaultView().VectorDensity
	}
	return max(1, points/d)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// PatternName returns the display name of p. Unrecognized tags are shown
// title-cased as entered.
func PatternName(p flow.Pattern) string {
	switch p := p.(type) {
	case nil:
		return flow.KindUnknown.Label()
	case flow.Unrecognized:
		tag := strings.Join(strings.Fields(p.Tag), " ")
		if tag == "" {
			return flow.KindUnknown.Label()
		}
		return cases.Title(language.English).String(tag)
	}
	return p.Kind().Label()
}

// Title returns the figure title for p.
func Title(p flow.Pattern) string {
	return "Flow Visualization: " + PatternName(p)
}
