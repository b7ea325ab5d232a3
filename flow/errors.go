package flow

import (
	"errors"
	"fmt"
)

// Sentinel errors for the flow package.
var (
	// ErrInvalidGrid is returned for grids with fewer than MinPoints
	// samples per axis or a non-positive domain size.
	ErrInvalidGrid = errors.New("flow: invalid grid")

	// ErrShape is returned when fields that must match do not.
	ErrShape = errors.New("flow: field shapes differ")

	// ErrNoFunction is the fallback reason for a Custom pattern without
	// a compiled function.
	ErrNoFunction = errors.New("flow: custom pattern has no function")

	// ErrUnknownPattern is the fallback reason for unrecognized pattern tags.
	ErrUnknownPattern = errors.New("flow: unknown pattern")

	// ErrNonFinite is wrapped by NonFiniteError.
	ErrNonFinite = errors.New("flow: field contains NaN or Inf")
)

// EvaluationError records why a custom stream function could not be
// evaluated. It is reported as a fallback, never returned as an error
// from Evaluate.
type EvaluationError struct {
	Source string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("flow: evaluating %q: %v", e.Source, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// NonFiniteError reports how many samples of a field are NaN or Inf.
type NonFiniteError struct {
	Count int
	Total int
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("flow: %d of %d samples are NaN or Inf", e.Count, e.Total)
}

func (e *NonFiniteError) Unwrap() error { return ErrNonFinite }
