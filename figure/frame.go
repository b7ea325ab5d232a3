package figure

// frame maps world coordinates onto the square plot area of the image.
type frame struct {
	x0, y0, side           float64 // plot area in pixels
	xmin, xmax, ymin, ymax float64 // world extent
}

func (f frame) x1() float64 { return f.x0 + f.side }
func (f frame) y1() float64 { return f.y0 + f.side }

// px converts a world position to pixels; y grows downwards on screen.
func (f frame) px(x, y float64) (float64, float64) {
	return f.x0 + (x-f.xmin)/(f.xmax-f.xmin)*f.side,
		f.y0 + (f.ymax-y)/(f.ymax-f.ymin)*f.side
}

// world converts a pixel position back to world coordinates.
func (f frame) world(px, py float64) (float64, float64) {
	return f.xmin + (px-f.x0)/f.side*(f.xmax-f.xmin),
		f.ymax - (py-f.y0)/f.side*(f.ymax-f.ymin)
}

// scale returns pixels per world unit.
func (f frame) scale() float64 { return f.side / (f.xmax - f.xmin) }

// layout places the plot area and the colour bar inside a width x height
// image.
func layout(width, height int, colorbar bool, xmin, xmax, ymin, ymax float64) (frame, float64) {
	const (
		left, top, bottom = 80.0, 64.0, 72.0
		rightPlain        = 40.0
		cbPad, cbLabels   = 16.0, 96.0
	)
	w, h := float64(width), float64(height)
	cbWidth := 0.0
	right := rightPlain
	if colorbar {
		cbWidth = 0.035 * w
		right = cbPad + cbWidth + cbLabels
	}
	side := min(w-left-right, h-top-bottom)
	f := frame{
		x0:   left + (w-left-right-side)/2,
		y0:   top + (h-top-bottom-side)/2,
		side: side,
		xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax,
	}
	return f, cbWidth
}
