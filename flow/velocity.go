package flow

import "math"

// Gradient recovers the velocity components u = ∂ψ/∂y and v = -∂ψ/∂x from
// psi by second-order central differences:
//
//	u[j,i] =  (ψ[j+1,i] - ψ[j-1,i]) / 2h
//	v[j,i] = -(ψ[j,i+1] - ψ[j,i-1]) / 2h
//
// The outermost rows and columns are left at zero; no one-sided
// differences are taken there. spacing must be the grid spacing
// (Grid.Spacing); a wrong value scales the result without being detected.
func Gradient(psi *Field, spacing float64) (u, v *Field) {
	u, v = NewField(psi.Rows, psi.Cols), NewField(psi.Rows, psi.Cols)
	if psi.Rows < MinPoints || psi.Cols < MinPoints {
		return u, v
	}
	h2 := 2 * spacing
	n := psi.Cols
	for j := 1; j < psi.Rows-1; j++ {
		for i := 1; i < n-1; i++ {
			k := j*n + i
			u.Data[k] = (psi.Data[k+n] - psi.Data[k-n]) / h2
			v.Data[k] = -(psi.Data[k+1] - psi.Data[k-1]) / h2
		}
	}
	return u, v
}

// Speed returns the velocity magnitude sqrt(u² + v²).
func Speed(u, v *Field) *Field {
	s := NewField(u.Rows, u.Cols)
	for i := range s.Data {
		s.Data[i] = math.Hypot(u.Data[i], v.Data[i])
	}
	return s
}
