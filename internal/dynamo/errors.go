package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and parameter handling. The integrator and
// controller never return errors; these belong to the layers around them.
var (
	// ErrParameterBounds indicates a parameter value is outside its slider range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name that no component recognizes.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownPreset indicates a preset name missing from the preset table.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// ParamError wraps a parameter failure with the offending name and value.
type ParamError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g", e.Wrapped, e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
