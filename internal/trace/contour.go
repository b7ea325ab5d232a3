package trace

import (
	"math"

	"github.com/gogpu/flowviz/flow"
)

// Segment is one piece of an isoline.
type Segment struct{ A, B Point }

// Levels returns n+1 evenly spaced band boundaries from lo to hi. A flat
// range (lo == hi) is widened by one unit either side so that bands still
// exist.
func Levels(lo, hi float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	if !(hi > lo) {
		lo, hi = lo-1, hi+1
	}
	out := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for k := range out {
		out[k] = lo + step*float64(k)
	}
	out[n] = hi
	return out
}

// Band returns the index of the band [levels[k], levels[k+1]) containing
// v, clamped to the outer bands. It returns -1 for NaN.
func Band(levels []float64, v float64) int {
	if math.IsNaN(v) || len(levels) < 2 {
		return -1
	}
	n := len(levels) - 1
	if v <= levels[0] {
		return 0
	}
	if v >= levels[n] {
		return n - 1
	}
	lo, hi := 0, n
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if levels[mid] <= v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// cell corners, counter-clockwise from the lower left
//
//	3 --- 2
//	|     |
//	0 --- 1
var cellEdges = [16][]int{
	0:  nil,
	1:  {3, 0},
	2:  {0, 1},
	3:  {3, 1},
	4:  {1, 2},
	5:  {3, 0, 1, 2}, // saddles isolate the high corners
	6:  {0, 2},
	7:  {3, 2},
	8:  {2, 3},
	9:  {2, 0},
	10: {0, 1, 2, 3},
	11: {2, 1},
	12: {1, 3},
	13: {1, 0},
	14: {0, 3},
	15: nil,
}

// Isolines traces the level curve f == level by marching squares. Cells
// with a NaN corner are skipped.
func Isolines(f *flow.Field, lat Lattice, level float64) []Segment {
	var segs []Segment
	for j := 0; j < f.Rows-1; j++ {
		for i := 0; i < f.Cols-1; i++ {
			c := [4]float64{f.At(j, i), f.At(j, i+1), f.At(j+1, i+1), f.At(j+1, i)}
			idx := 0
			finite := true
			for k, v := range c {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					finite = false
					break
				}
				if v > level {
					idx |= 1 << k
				}
			}
			if !finite {
				continue
			}
			edges := cellEdges[idx]
			if idx == 5 || idx == 10 {
				// a high centre joins the high corners, isolating the low ones
				if (c[0]+c[1]+c[2]+c[3])/4 > level {
					edges = cellEdges[15-idx]
				}
			}
			for e := 0; e+1 < len(edges); e += 2 {
				a := edgePoint(lat, i, j, c, edges[e], level)
				b := edgePoint(lat, i, j, c, edges[e+1], level)
				segs = append(segs, Segment{A: a, B: b})
			}
		}
	}
	return segs
}

// edgePoint interpolates the crossing on edge e of cell (i, j). Edge e
// joins corner e and corner (e+1)%4.
func edgePoint(lat Lattice, i, j int, c [4]float64, e int, level float64) Point {
	// corner offsets in (column, row)
	offs := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	a, b := e, (e+1)%4
	t := 0.5
	if d := c[b] - c[a]; d != 0 {
		t = (level - c[a]) / d
	}
	fi := float64(i) + offs[a][0] + t*(offs[b][0]-offs[a][0])
	fj := float64(j) + offs[a][1] + t*(offs[b][1]-offs[a][1])
	return lat.World(fi, fj)
}
