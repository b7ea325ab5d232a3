package trace

import (
	"math"

	"github.com/gogpu/flowviz/flow"
)

// Streamline is an integrated trajectory of the velocity field, ordered in
// the direction of flow.
type Streamline struct {
	Points []Point

	// Arrow is the index of the segment (Points[Arrow], Points[Arrow+1])
	// halfway along the line, where a direction marker belongs.
	Arrow int
}

// StreamOptions tunes streamline placement.
type StreamOptions struct {
	// Density scales the number of lines; 1 divides the domain into a
	// 30x30 occupancy mask.
	Density float64

	// MinLength and MaxLength bound a trajectory, as fractions of the
	// domain width.
	MinLength, MaxLength float64
}

// DefaultStreamOptions returns density 1 with lines between 0.1 and 4
// domain widths long.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{Density: 1, MinLength: 0.1, MaxLength: 4}
}

// Streamlines seeds trajectories over an occupancy mask, walking the mask
// from the boundary inwards, and integrates each one forwards and
// backwards with a midpoint (RK2) scheme until it leaves the domain,
// stalls, runs into another line or exceeds MaxLength.
func Streamlines(u, v *flow.Field, lat Lattice, opts StreamOptions) []Streamline {
	if opts.Density <= 0 {
		opts.Density = 1
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultStreamOptions().MaxLength
	}
	vmax := 0.0
	for k := range u.Data {
		s := math.Hypot(u.Data[k], v.Data[k])
		if !math.IsNaN(s) && !math.IsInf(s, 0) {
			vmax = math.Max(vmax, s)
		}
	}
	if vmax == 0 || lat.Cols < 2 || lat.Rows < 2 {
		return nil
	}

	n := max(2, int(30*opts.Density))
	t := &tracer{
		u: u, v: v, lat: lat,
		mask:  newMask(n, n, lat),
		stall: vmax * 1e-9,
	}
	width := float64(lat.Cols - 1)
	// step in sample units, at most half a mask cell
	t.ds = math.Min(0.25, 0.5*t.mask.cellW)
	t.maxSteps = int(opts.MaxLength * width / t.ds)
	minLen := opts.MinLength * width

	var lines []Streamline
	for _, c := range spiral(n, n) {
		if t.mask.taken(c[0], c[1]) {
			continue
		}
		fi, fj := t.mask.centre(c[0], c[1])
		if line, ok := t.trace(fi, fj, minLen); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

type tracer struct {
	u, v     *flow.Field
	lat      Lattice
	mask     *mask
	ds       float64
	stall    float64
	maxSteps int
}

// direction returns the unit velocity at fractional indices.
func (t *tracer) direction(fi, fj float64) (di, dj float64, ok bool) {
	uu := Bilinear(t.u, fi, fj)
	vv := Bilinear(t.v, fi, fj)
	s := math.Hypot(uu, vv)
	if !(s > t.stall) || math.IsInf(s, 0) {
		return 0, 0, false
	}
	return uu / s, vv / s, true
}

func (t *tracer) trace(fi, fj, minLen float64) (Streamline, bool) {
	ci, cj := t.mask.cell(fi, fj)
	t.mask.mark(ci, cj)
	visited := [][2]int{{ci, cj}}

	back, lb := t.integrate(fi, fj, -1, &visited)
	fwd, lf := t.integrate(fi, fj, 1, &visited)

	if lb+lf < minLen || len(back)+len(fwd) < 1 {
		for _, c := range visited {
			t.mask.clear(c[0], c[1])
		}
		return Streamline{}, false
	}

	pts := make([]Point, 0, len(back)+len(fwd)+1)
	for k := len(back) - 1; k >= 0; k-- {
		pts = append(pts, back[k])
	}
	pts = append(pts, t.lat.World(fi, fj))
	pts = append(pts, fwd...)
	return Streamline{Points: pts, Arrow: midpoint(pts)}, true
}

// integrate walks from (fi, fj) in direction sign and returns the visited
// world points, excluding the start, and the length in sample units.
func (t *tracer) integrate(fi, fj, sign float64, visited *[][2]int) ([]Point, float64) {
	var pts []Point
	length := 0.0
	ci, cj := t.mask.cell(fi, fj)
	for range t.maxSteps {
		d0i, d0j, ok := t.direction(fi, fj)
		if !ok {
			break
		}
		mi, mj := fi+sign*0.5*t.ds*d0i, fj+sign*0.5*t.ds*d0j
		if !t.lat.Inside(mi, mj) {
			break
		}
		d1i, d1j, ok := t.direction(mi, mj)
		if !ok {
			break
		}
		ni, nj := fi+sign*t.ds*d1i, fj+sign*t.ds*d1j
		if !t.lat.Inside(ni, nj) {
			break
		}
		if nci, ncj := t.mask.cell(ni, nj); nci != ci || ncj != cj {
			if t.mask.taken(nci, ncj) {
				break
			}
			t.mask.mark(nci, ncj)
			*visited = append(*visited, [2]int{nci, ncj})
			ci, cj = nci, ncj
		}
		fi, fj = ni, nj
		length += t.ds
		pts = append(pts, t.lat.World(fi, fj))
	}
	return pts, length
}

// midpoint returns the index of the segment containing half the arc
// length of pts.
func midpoint(pts []Point) int {
	if len(pts) < 2 {
		return 0
	}
	total := 0.0
	for k := 1; k < len(pts); k++ {
		total += math.Hypot(pts[k].X-pts[k-1].X, pts[k].Y-pts[k-1].Y)
	}
	acc := 0.0
	for k := 1; k < len(pts); k++ {
		acc += math.Hypot(pts[k].X-pts[k-1].X, pts[k].Y-pts[k-1].Y)
		if acc >= total/2 {
			return k - 1
		}
	}
	return len(pts) - 2
}

// mask is the occupancy grid that keeps streamlines apart.
type mask struct {
	nx, ny       int
	cellW, cellH float64 // in sample units
	maxI, maxJ   float64
	cells        []bool
}

func newMask(nx, ny int, lat Lattice) *mask {
	return &mask{
		nx: nx, ny: ny,
		cellW: float64(lat.Cols-1) / float64(nx-1),
		cellH: float64(lat.Rows-1) / float64(ny-1),
		maxI:  float64(lat.Cols - 1),
		maxJ:  float64(lat.Rows - 1),
		cells: make([]bool, nx*ny),
	}
}

func (m *mask) cell(fi, fj float64) (int, int) {
	ci := int(math.Round(fi / m.cellW))
	cj := int(math.Round(fj / m.cellH))
	return min(max(ci, 0), m.nx-1), min(max(cj, 0), m.ny-1)
}

func (m *mask) centre(ci, cj int) (float64, float64) {
	return math.Min(float64(ci)*m.cellW, m.maxI), math.Min(float64(cj)*m.cellH, m.maxJ)
}

func (m *mask) taken(ci, cj int) bool { return m.cells[cj*m.nx+ci] }
func (m *mask) mark(ci, cj int)       { m.cells[cj*m.nx+ci] = true }
func (m *mask) clear(ci, cj int)      { m.cells[cj*m.nx+ci] = false }

// spiral lists the cells of an nx x ny mask ring by ring from the
// boundary inwards.
func spiral(nx, ny int) [][2]int {
	out := make([][2]int, 0, nx*ny)
	x0, y0, x1, y1 := 0, 0, nx-1, ny-1
	for x0 <= x1 && y0 <= y1 {
		for x := x0; x <= x1; x++ {
			out = append(out, [2]int{x, y0})
		}
		for y := y0 + 1; y <= y1; y++ {
			out = append(out, [2]int{x1, y})
		}
		if y1 > y0 {
			for x := x1 - 1; x >= x0; x-- {
				out = append(out, [2]int{x, y1})
			}
		}
		if x1 > x0 {
			for y := y1 - 1; y > y0; y-- {
				out = append(out, [2]int{x0, y})
			}
		}
		x0, y0, x1, y1 = x0+1, y0+1, x1-1, y1-1
	}
	return out
}
