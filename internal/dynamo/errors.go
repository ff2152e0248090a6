package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a body with a NaN or Inf component.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrNonPositiveMass indicates a body whose mass is zero or negative.
	ErrNonPositiveMass = errors.New("dynamo: body mass must be positive")

	// ErrDimensionMismatch indicates input rows that do not fit the chosen dimension.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between input and simulation")

	// ErrUnknownIntegrator indicates an integrator name that is not registered.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrBadTimestep indicates a non-positive or non-finite dt.
	ErrBadTimestep = errors.New("dynamo: timestep must be positive and finite")

	// ErrEmptyStore indicates that no bodies were loaded.
	ErrEmptyStore = errors.New("dynamo: no bodies loaded")
)

// SimulationError wraps an error with the tick at which it was detected.
type SimulationError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
