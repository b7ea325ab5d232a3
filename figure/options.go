package figure

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Option configures a figure.
//
// Example:
//
//	// Default 1000x800 figure
//	err := figure.Render(w, res, view)
//
//	// Smaller figure with a custom title
//	err := figure.Render(w, res, view, figure.WithSize(640, 512), figure.WithTitle("Wake"))
type Option func(*options)

type options struct {
	width, height int
	font          *text.FontSource
	background    gg.RGBA
	title         string
}

// defaultOptions returns the default figure options.
func defaultOptions() options {
	return options{
		width:      1000,
		height:     800,
		font:       nil, // Go Regular if nil
		background: gg.White,
	}
}

// MinSize is the smallest accepted image dimension.
const MinSize = 320

// WithSize sets the image size in pixels. Dimensions below MinSize are
// raised to MinSize.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = max(width, MinSize)
		o.height = max(height, MinSize)
	}
}

// WithFontSource sets the font used for labels. The source is not closed
// by the figure.
func WithFontSource(src *text.FontSource) Option {
	return func(o *options) {
		o.font = src
	}
}

// WithBackground sets the colour outside the plot area.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithTitle replaces the default "Flow Visualization: <pattern>" title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}
