package flowviz

import (
	"errors"
	"fmt"

	"github.com/gogpu/flowviz/flow"
)

// Error kinds surfaced by the pipeline. Each is matchable with errors.Is.
var (
	// ErrParse wraps a custom expression that failed to parse. No
	// fallback function is substituted.
	ErrParse = errors.New("flowviz: invalid expression")

	// ErrNonFinite is returned when ψ contains NaN or Inf samples. The
	// error wraps a *flow.NonFiniteError with the count.
	ErrNonFinite = flow.ErrNonFinite

	// ErrInvalidSpacing is returned for grids too coarse for central
	// differences or with a non-positive domain.
	ErrInvalidSpacing = errors.New("flowviz: invalid grid spacing")

	// ErrInvalidView is returned by View.Validate.
	ErrInvalidView = errors.New("flowviz: invalid view settings")

	// ErrRender marks any other failure inside the pipeline. It is what
	// a *RenderError matches.
	ErrRender = errors.New("flowviz: error generating visualization")
)

// RenderError is a failure caught at the top of the pipeline, including
// recovered panics. Stage names where it happened ("compute", "figure",
// "chart").
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("flowviz: %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is reports ErrRender as a match so callers need not know the concrete type.
func (e *RenderError) Is(target error) bool { return target == ErrRender }

// Recovered converts a recovered panic value into a *RenderError.
func Recovered(stage string, v any) error {
	if err, ok := v.(error); ok {
		return &RenderError{Stage: stage, Err: fmt.Errorf("panic: %w", err)}
	}
	return &RenderError{Stage: stage, Err: fmt.Errorf("panic: %v", v)}
}
