package flowviz

import (
	"errors"
	"testing"

	"github.com/gogpu/flowviz/flow"
)

func TestViewNormalize(t *testing.T) {
	v := View{StreamlineDensity: 1, VectorDensity: 100, ContourLevels: 60}.Normalize()
	if v.StreamlineDensity != MinStreamlineDensity {
		t.Errorf("StreamlineDensity = %d, want %d", v.StreamlineDensity, MinStreamlineDensity)
	}
	if v.VectorDensity != MaxVectorDensity {
		t.Errorf("VectorDensity = %d, want %d", v.VectorDensity, MaxVectorDensity)
	}
	if v.ContourLevels != MaxContourLevels {
		t.Errorf("ContourLevels = %d, want %d", v.ContourLevels, MaxContourLevels)
	}
	if v.Colormap != "viridis" {
		t.Errorf("Colormap = %q, want viridis", v.Colormap)
	}
	if d := DefaultView(); d.Normalize() != d {
		t.Errorf("DefaultView changed by Normalize: %+v", d.Normalize())
	}
}

func TestViewValidate(t *testing.T) {
	if err := DefaultView().Validate(); err != nil {
		t.Errorf("DefaultView().Validate() = %v", err)
	}
	v := DefaultView()
	v.Colormap = "rainbowish"
	if err := v.Validate(); !errors.Is(err, ErrInvalidView) {
		t.Errorf("Validate() = %v, want ErrInvalidView", err)
	}
}

func TestQuiverStep(t *testing.T) {
	tests := []struct {
		points, density, want int
	}{
		{50, 15, 3},
		{100, 5, 20},
		{20, 40, 1}, // density above resolution
		{20, 20, 1},
		{50, 0, 3},
	}
	for _, tt := range tests {
		v := View{VectorDensity: tt.density}
		if got := v.QuiverStep(tt.points); got != tt.want {
			t.Errorf("QuiverStep(%d) with density %d = %d, want %d", tt.points, tt.density, got, tt.want)
		}
	}
}

func TestPatternName(t *testing.T) {
	tests := []struct {
		p    flow.Pattern
		want string
	}{
		{flow.Vortex{}, "Vortex"},
		{flow.Cylinder{}, "Cylinder in Flow"},
		{flow.Custom{}, "Custom Function"},
		{flow.Unrecognized{Tag: "  rankine   oval "}, "Rankine Oval"},
		{flow.Unrecognized{}, "Unknown"},
		{nil, "Unknown"},
	}
	for _, tt := range tests {
		if got := PatternName(tt.p); got != tt.want {
			t.Errorf("PatternName(%#v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
