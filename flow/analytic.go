package flow

import "math"

// Velocity returns the closed-form velocity of a built-in pattern at (x, y),
// unregularized. ok is false for Custom and Unrecognized patterns and at
// the singular origin of patterns that have one.
func Velocity(p Pattern, x, y float64) (u, v float64, ok bool) {
	r2 := x*x + y*y
	switch p := p.(type) {
	case Uniform:
		return p.U, 0, true
	case SourceSink:
		if r2 == 0 {
			return 0, 0, false
		}
		u, v = sourceVelocity(p.Q, x, y, r2)
		return u, v, true
	case Vortex:
		if r2 == 0 {
			return 0, 0, false
		}
		u, v = vortexVelocity(p.Gamma, x, y, r2)
		return u, v, true
	case Doublet:
		if r2 == 0 {
			return 0, 0, false
		}
		r4 := r2 * r2
		return -p.Kappa * (x*x - y*y) / r4, -2 * p.Kappa * x * y / r4, true
	case Cylinder:
		if r2 == 0 {
			return 0, 0, false
		}
		a2, r4 := p.Radius*p.Radius, r2*r2
		return p.U * (1 - a2*(x*x-y*y)/r4), -2 * p.U * a2 * x * y / r4, true
	case Combination:
		if r2 == 0 && (p.Source || p.Vortex) {
			return 0, 0, false
		}
		if p.Uniform {
			u += p.U
		}
		if p.Source {
			su, sv := sourceVelocity(p.Q, x, y, r2)
			u, v = u+su, v+sv
		}
		if p.Vortex {
			vu, vv := vortexVelocity(p.Gamma, x, y, r2)
			u, v = u+vu, v+vv
		}
		return u, v, true
	}
	return 0, 0, false
}

func sourceVelocity(q, x, y, r2 float64) (u, v float64) {
	k := q / (2 * math.Pi)
	return k * x / r2, k * y / r2
}

func vortexVelocity(gamma, x, y, r2 float64) (u, v float64) {
	k := gamma / (2 * math.Pi)
	return k * y / r2, -k * x / r2
}

// VelocityError compares a numeric velocity field on g with the closed
// form of p and returns the largest deviation |(u, v) - (u*, v*)| over the
// interior samples. ok is false when p has no closed form or no interior
// sample could be compared.
func VelocityError(p Pattern, g *Grid, u, v *Field) (maxErr float64, ok bool) {
	rows, cols := len(g.Ys), len(g.Xs)
	if u.Rows != rows || u.Cols != cols || !u.SameShape(v) {
		return 0, false
	}
	for j := 1; j < rows-1; j++ {
		for i := 1; i < cols-1; i++ {
			wu, wv, exact := Velocity(p, g.Xs[i], g.Ys[j])
			if !exact {
				continue
			}
			d := math.Hypot(u.At(j, i)-wu, v.At(j, i)-wv)
			if math.IsNaN(d) {
				continue
			}
			maxErr = math.Max(maxErr, d)
			ok = true
		}
	}
	return maxErr, ok
}
