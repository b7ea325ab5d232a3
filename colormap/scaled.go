package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// ErrRange is returned by Scaled.At when Min is not below Max.
var ErrRange = errors.New("colormap: empty or inverted range")

// Scaled maps data values in [Min, Max] onto a Map. It implements
// gonum.org/v1/plot/palette.ColorMap.
type Scaled struct {
	m        *Map
	min, max float64
	alpha    float64
	bands    int
}

var _ palette.ColorMap = (*Scaled)(nil)

// Scaled returns the map stretched over [min, max], fully opaque.
func (m *Map) Scaled(min, max float64) *Scaled {
	return &Scaled{m: m, min: min, max: max, alpha: 1}
}

// At returns the colour of v. Values outside the range or NaN report
// the palette errors; the colour of the nearest end is still returned.
func (s *Scaled) At(v float64) (color.Color, error) {
	if err := s.check(); err != nil {
		return color.Transparent, err
	}
	switch {
	case math.IsNaN(v):
		return color.Transparent, palette.ErrNaN
	case v < s.min:
		return s.color(0), palette.ErrUnderflow
	case v > s.max:
		return s.color(1), palette.ErrOverflow
	}
	return s.color((v - s.min) / (s.max - s.min)), nil
}

func (s *Scaled) check() error {
	if !(s.min < s.max) {
		return fmt.Errorf("%w: [%g, %g]", ErrRange, s.min, s.max)
	}
	return nil
}

// Banded returns a copy of s that splits the range into n equal bands,
// each drawn with the colour at its centre. n < 1 turns banding off.
func (s *Scaled) Banded(n int) *Scaled {
	c := *s
	c.bands = max(n, 0)
	return &c
}

func (s *Scaled) color(t float64) color.Color {
	if s.bands > 0 {
		// a value on a band edge belongs to the upper band
		k := min(int(math.Floor(t*float64(s.bands)+1e-9)), s.bands-1)
		t = (float64(k) + 0.5) / float64(s.bands)
	}
	c := s.m.At(t)
	c.A *= s.alpha
	return c.Color()
}

// Palette returns n colours evenly spaced over the map with the current
// alpha applied.
func (s *Scaled) Palette(n int) palette.Palette {
	p := make(Palette, 0, max(n, 0))
	for _, c := range s.m.Sample(n) {
		c.A *= s.alpha
		p = append(p, c.Color())
	}
	return p
}

func (s *Scaled) Max() float64     { return s.max }
func (s *Scaled) Min() float64     { return s.min }
func (s *Scaled) SetMax(v float64) { s.max = v }
func (s *Scaled) SetMin(v float64) { s.min = v }
func (s *Scaled) Alpha() float64   { return s.alpha }

// SetAlpha sets the opacity. It panics if alpha is outside [0, 1].
func (s *Scaled) SetAlpha(alpha float64) {
	if !(alpha >= 0 && alpha <= 1) {
		panic(fmt.Sprintf("colormap: invalid alpha %g", alpha))
	}
	s.alpha = alpha
}
