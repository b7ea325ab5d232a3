// Package flowviz computes and visualizes two-dimensional potential-flow
// patterns through their stream function.
//
// # Overview
//
// A flow pattern is evaluated on a square grid to give the stream function
// ψ. The velocity field follows from ψ by central differences:
//
//	u =  ∂ψ/∂y
//	v = -∂ψ/∂x
//
// Streamlines are the level curves of ψ, so the result can be drawn as
// filled contours, isolines, integrated streamlines and a quiver plot.
//
// # Quick Start
//
//	import "github.com/gogpu/flowviz"
//
//	res, err := flowviz.Compute(flowviz.Request{
//	    Pattern:    flow.Cylinder{U: 1, Radius: 1},
//	    DomainSize: 10,
//	    GridPoints: 50,
//	})
//	if err != nil {
//	    return err
//	}
//	f, _ := os.Create("cylinder.png")
//	defer f.Close()
//	return figure.Render(f, res, flowviz.DefaultView())
//
// # Custom stream functions
//
// User expressions are parsed by package expr into a restricted arithmetic
// grammar; nothing is executed dynamically. A custom function that fails at
// evaluation time degrades to the zero field and is reported through
// [Result.Fallback] and [Result.Warnings]. A parse failure is an error.
//
// # Packages
//
//   - expr: expression parser, compiler, derivative and LaTeX printing
//   - flow: grid, fields, patterns, evaluator and velocity estimator
//   - colormap: named colour maps
//   - figure: PNG figures drawn with github.com/gogpu/gg
//   - chart: SVG, PDF and EPS export through gonum.org/v1/plot
//   - server: browser interface
package flowviz

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
