// Package colormap provides the named colour maps offered by the figure
// and chart renderers.
//
// Maps are defined by evenly spaced sRGB stops and interpolated in linear
// light, the way gg blends gradient stops.
package colormap

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/gogpu/gg"
)

// Default is the colour map used when none is chosen.
const Default = "viridis"

// Stop is a colour at a position in [0, 1].
type Stop struct {
	Offset float64
	Color  gg.RGBA
}

// Map is a named, continuous colour map. A Map is immutable and safe for
// concurrent use.
type Map struct {
	name  string
	stops []Stop
}

// New builds a map from evenly spaced hex colours ("#rrggbb").
func New(name string, hexes ...string) *Map {
	stops := make([]Stop, len(hexes))
	for i, h := range hexes {
		off := 0.0
		if len(hexes) > 1 {
			off = float64(i) / float64(len(hexes)-1)
		}
		stops[i] = Stop{Offset: off, Color: gg.Hex(h)}
	}
	return &Map{name: name, stops: stops}
}

// FromStops builds a map from explicit stops. Stops are sorted by offset.
func FromStops(name string, stops []Stop) *Map {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return &Map{name: name, stops: sorted}
}

// Name returns the map's name.
func (m *Map) Name() string { return m.name }

// At returns the colour at t. t is clamped to [0, 1]; NaN maps to the
// first stop.
func (m *Map) At(t float64) gg.RGBA {
	if len(m.stops) == 0 {
		return gg.Transparent
	}
	if len(m.stops) == 1 || math.IsNaN(t) {
		return m.stops[0].Color
	}
	t = clamp01(t)

	idx := sort.Search(len(m.stops), func(i int) bool {
		return m.stops[i].Offset >= t
	})
	if idx == 0 {
		return m.stops[0].Color
	}
	if idx >= len(m.stops) {
		return m.stops[len(m.stops)-1].Color
	}
	s1, s2 := m.stops[idx-1], m.stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return lerpLinear(s1.Color, s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}

// Sample returns n colours evenly spaced over the map, end points
// included. n == 1 yields the middle colour.
func (m *Map) Sample(n int) []gg.RGBA {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []gg.RGBA{m.At(0.5)}
	}
	out := make([]gg.RGBA, n)
	for i := range out {
		out[i] = m.At(float64(i) / float64(n-1))
	}
	return out
}

// Bands returns the colours of n equal bands, each taken at the band's
// middle.
func (m *Map) Bands(n int) []gg.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]gg.RGBA, n)
	for k := range out {
		out[k] = m.At((float64(k) + 0.5) / float64(n))
	}
	return out
}

// Palette returns n sampled colours as a gonum/plot palette.
func (m *Map) Palette(n int) Palette {
	s := m.Sample(n)
	p := make(Palette, len(s))
	for i, c := range s {
		p[i] = c.Color()
	}
	return p
}

// Palette is a fixed list of colours. It implements
// gonum.org/v1/plot/palette.Palette.
type Palette []color.Color

// Colors returns the palette's colours.
func (p Palette) Colors() []color.Color { return p }

// lerpLinear interpolates two sRGB colours in linear light.
func lerpLinear(c1, c2 gg.RGBA, t float64) gg.RGBA {
	mix := func(a, b float64) float64 {
		la, lb := srgbToLinear(a), srgbToLinear(b)
		return linearToSRGB(la + t*(lb-la))
	}
	return gg.RGBA{
		R: mix(c1.R, c2.R),
		G: mix(c1.G, c2.G),
		B: mix(c1.B, c2.B),
		A: c1.A + t*(c2.A-c1.A),
	}
}

func srgbToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

var registry = []*Map{
	New("viridis", "#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c", "#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725"),
	New("plasma", "#0d0887", "#41049d", "#6a00a8", "#8f0da4", "#b12a90", "#cc4778", "#e16462", "#f2844b", "#fca636", "#fcce25", "#f0f921"),
	New("inferno", "#000004", "#160b39", "#420a68", "#6a176e", "#932667", "#bc3754", "#dd513a", "#f37819", "#fca50a", "#f6d746", "#fcffa4"),
	New("magma", "#000004", "#140e36", "#3b0f70", "#641a80", "#8c2981", "#b73779", "#de4968", "#f7705c", "#fe9f6d", "#fecf92", "#fcfdbf"),
	New("cividis", "#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838"),
	New("turbo", "#30123b", "#4662d7", "#36aaf9", "#1ae4b6", "#72fe5e", "#c8ef34", "#faba39", "#f66b19", "#cb2a04", "#7a0403"),
	New("jet", "#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f", "#ffff00", "#ff7f00", "#ff0000", "#7f0000"),
	New("coolwarm", "#3b4cc0", "#6282ea", "#8db0fe", "#b8d0f9", "#dddddd", "#f5c4ac", "#f49a7b", "#dd604c", "#b40426"),
	New("RdBu", "#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7", "#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061"),
	New("RdYlBu", "#a50026", "#d73027", "#f46d43", "#fdae61", "#fee090", "#ffffbf", "#e0f3f8", "#abd9e9", "#74add1", "#4575b4", "#313695"),
}

// Names returns the registered map names in menu order.
func Names() []string {
	names := make([]string, len(registry))
	for i, m := range registry {
		names[i] = m.name
	}
	return names
}

// Lookup finds a map by name, ignoring case.
func Lookup(name string) (*Map, bool) {
	name = strings.TrimSpace(name)
	for _, m := range registry {
		if strings.EqualFold(m.name, name) {
			return m, true
		}
	}
	return nil, false
}

// Get returns the named map, or the default map when the name is unknown.
func Get(name string) *Map {
	if m, ok := Lookup(name); ok {
		return m
	}
	m, _ := Lookup(Default)
	return m
}
