package figure

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/raster"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/colormap"
	"github.com/gogpu/flowviz/flow"
)

func compute(t *testing.T, p flow.Pattern) *flowviz.Result {
	t.Helper()
	res, err := flowviz.Compute(flowviz.Request{Pattern: p, DomainSize: 10, GridPoints: 41})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func render(t *testing.T, res *flowviz.Result, view flowviz.View, opts ...Option) image.Image {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, res, view, opts...); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return img
}

func rgb8(img image.Image, x, y int) [3]int {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
}

func TestRenderSize(t *testing.T) {
	img := render(t, compute(t, flow.Cylinder{U: 1, Radius: 1}), flowviz.DefaultView(), WithSize(640, 512))
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 512 {
		t.Errorf("image is %dx%d, want 640x512", b.Dx(), b.Dy())
	}

	img = render(t, compute(t, flow.Vortex{Gamma: 5}), flowviz.DefaultView(), WithSize(10, 10))
	if b := img.Bounds(); b.Dx() != MinSize || b.Dy() != MinSize {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), MinSize, MinSize)
	}
}

func TestRenderContourColour(t *testing.T) {
	res := compute(t, flow.Uniform{U: 1})
	view := flowviz.View{ShowContour: true, ContourLevels: 20, Colormap: "viridis"}
	img := render(t, res, view, WithSize(640, 512))

	fr, _ := layout(640, 512, true, -5, 5, -5, 5)
	// world (1, 4.8): inside the top band, clear of grid lines and isolines
	px, py := fr.px(1, 4.8)
	got := rgb8(img, int(px), int(py))

	want := overWhite(colormap.Get("viridis").At(19.5/20), contourAlpha)
	w := [3]int{int(want.R*255 + 0.5), int(want.G*255 + 0.5), int(want.B*255 + 0.5)}
	for c := range got {
		if d := got[c] - w[c]; d < -3 || d > 3 {
			t.Fatalf("pixel = %v, want %v", got, w)
		}
	}

	// without contours the axes face is white
	img = render(t, res, flowviz.View{Colormap: "viridis"}, WithSize(640, 512))
	fr, _ = layout(640, 512, false, -5, 5, -5, 5)
	px, py = fr.px(1, 4.8)
	if got := rgb8(img, int(px), int(py)); got != [3]int{255, 255, 255} {
		t.Errorf("plain axes pixel = %v, want white", got)
	}
}

func TestRenderBackground(t *testing.T) {
	res := compute(t, flow.Uniform{U: 1})
	img := render(t, res, flowviz.DefaultView(), WithSize(640, 512), WithBackground(gg.RGB(1, 0, 0)), WithTitle("t"))
	if got := rgb8(img, 2, 2); got != [3]int{255, 0, 0} {
		t.Errorf("corner pixel = %v, want red", got)
	}
}

func TestRenderErrors(t *testing.T) {
	if err := Render(&bytes.Buffer{}, nil, flowviz.DefaultView()); !errors.Is(err, ErrNoResult) {
		t.Errorf("Render(nil) = %v, want ErrNoResult", err)
	}
	// a result without a grid cannot be drawn; the panic is recovered
	err := Render(&bytes.Buffer{}, &flowviz.Result{}, flowviz.DefaultView())
	if !errors.Is(err, flowviz.ErrRender) {
		t.Errorf("Render(empty) = %v, want ErrRender", err)
	}
}

func TestRenderAllPatterns(t *testing.T) {
	patterns := []flow.Pattern{
		flow.Uniform{U: -3},
		flow.SourceSink{Q: 5},
		flow.Vortex{Gamma: -5},
		flow.Doublet{Kappa: 5},
		flow.Cylinder{U: 1, Radius: 2},
		flow.Combination{Uniform: true, U: 1, Source: true, Q: 1, Vortex: true, Gamma: 1},
		flow.Combination{},
		flow.Unrecognized{Tag: "rankine"},
	}
	view := flowviz.DefaultView()
	view.VectorDensity = 40 // denser than the grid
	for _, p := range patterns {
		res := compute(t, p)
		var buf bytes.Buffer
		if err := Render(&buf, res, view, WithSize(400, 320)); err != nil {
			t.Errorf("%T: %v", p, err)
		}
	}
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{-5, 5, 5, []float64{-4, -2, 0, 2, 4}},
		{0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{-1, 1, 4, []float64{-1, -0.5, 0, 0.5, 1}},
		{3, 3, 5, []float64{3}},
	}
	for _, tt := range tests {
		got := niceTicks(tt.lo, tt.hi, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("niceTicks(%v, %v) = %v, want %v", tt.lo, tt.hi, got, tt.want)
			continue
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("niceTicks(%v, %v) = %v, want %v", tt.lo, tt.hi, got, tt.want)
				break
			}
		}
	}
	if got := formatTick(0.6000000000000001); got != "0.6" {
		t.Errorf("formatTick = %q", got)
	}
	if got := formatTick(-2); got != "-2" {
		t.Errorf("formatTick(-2) = %q", got)
	}
}

func TestFrame(t *testing.T) {
	fr := frame{x0: 100, y0: 50, side: 400, xmin: -5, xmax: 5, ymin: -5, ymax: 5}
	x, y := fr.px(-5, 5)
	if x != 100 || y != 50 {
		t.Errorf("px(-5, 5) = %v, %v, want top-left", x, y)
	}
	x, y = fr.px(0, 0)
	if x != 300 || y != 250 {
		t.Errorf("px(0, 0) = %v, %v", x, y)
	}
	wx, wy := fr.world(x, y)
	if wx != 0 || wy != 0 {
		t.Errorf("world = %v, %v", wx, wy)
	}
	if fr.scale() != 40 {
		t.Errorf("scale = %v", fr.scale())
	}
}

func TestOverWhite(t *testing.T) {
	got := overWhite(gg.Black, 0.7)
	if math.Abs(got.R-0.3) > 1e-12 || got.A != 1 {
		t.Errorf("overWhite(black) = %+v", got)
	}
}
