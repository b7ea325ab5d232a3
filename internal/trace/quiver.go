package trace

import "github.com/gogpu/flowviz/flow"

// Arrow is one quiver vector anchored at its tail.
type Arrow struct {
	X, Y float64
	U, V float64
}

// Quiver subsamples the velocity field every step samples in both
// directions, starting at sample 0. step is raised to 1 if smaller.
func Quiver(u, v *flow.Field, lat Lattice, step int) []Arrow {
	step = max(step, 1)
	var out []Arrow
	for j := 0; j < u.Rows; j += step {
		for i := 0; i < u.Cols; i += step {
			p := lat.World(float64(i), float64(j))
			out = append(out, Arrow{X: p.X, Y: p.Y, U: u.At(j, i), V: v.At(j, i)})
		}
	}
	return out
}
