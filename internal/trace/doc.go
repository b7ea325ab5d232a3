// Package trace extracts drawable geometry from sampled fields: bilinear
// sampling, isolines by marching squares, streamlines and quiver arrows.
//
// Everything here works in world coordinates through a Lattice, so the
// figure and chart renderers only map world to device space.
package trace
