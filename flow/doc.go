// Package flow evaluates two-dimensional potential-flow stream functions on
// a uniform grid and recovers the velocity field from them.
//
// Fields are stored row-major: the first axis runs along y and the second
// along x, matching a meshgrid of the grid axes.
//
// The package is pure: every function depends only on its arguments and
// nothing is cached between calls.
package flow
