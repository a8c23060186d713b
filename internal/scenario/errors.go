package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a scenario field outside its domain range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidRange indicates a custom range whose minimum exceeds its maximum.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnknownPreset indicates a preset name that is not in the preset table.
	ErrUnknownPreset = errors.New("unknown preset")
)

// ParameterError describes a value that falls outside the range allowed for
// its field.
type ParameterError struct {
	Field string
	Value float64
	Range Range
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g outside allowed range %s", ErrInvalidParameter, e.Field, e.Value, e.Range)
}

// Is reports whether target is ErrInvalidParameter.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// RangeError describes a custom range override with min greater than max.
type RangeError struct {
	Field string
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s min %g is greater than max %g", ErrInvalidRange, e.Field, e.Min, e.Max)
}

// Is reports whether target is ErrInvalidRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
