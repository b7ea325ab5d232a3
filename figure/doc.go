// Package figure draws flow results as PNG images with github.com/gogpu/gg.
//
// A figure has one square plot with equal axis scaling. Depending on the
// view it shows filled stream-function contours with a colour bar,
// isolines, streamlines with direction arrows, a subsampled quiver plot
// and, for flow past a cylinder, the cylinder outline.
package figure
