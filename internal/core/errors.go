package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching error kinds with errors.Is.
var (
	ErrConversion = errors.New("conversion error")
	ErrDateParse  = errors.New("date parse error")
	ErrEmptyInput = errors.New("empty input")
)

// ConversionError reports a raw value that cannot be parsed to its target type.
type ConversionError struct {
	Line   int    // 1-based data line of the raw row (0 if unknown)
	Field  string // Raw column name
	Value  string // Offending raw value
	Target string // "int", "float" or "minutes"
	Err    error  // Underlying parse error, if any
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("conversion error: line %d: cannot convert %s value %q to %s", e.Line, e.Field, e.Value, e.Target)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// DateParseError reports an order date that does not match the expected layout.
type DateParseError struct {
	Line   int
	Field  string
	Value  string
	Layout string
	Err    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("date parse error: line %d: %s value %q does not match dd-mm-yyyy", e.Line, e.Field, e.Value)
}

func (e *DateParseError) Unwrap() error { return e.Err }

func (e *DateParseError) Is(target error) bool { return target == ErrDateParse }

// EmptyInputError reports a statistic requested over zero matching rows.
type EmptyInputError struct {
	Op string // Name of the computation that had no input
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no matching rows", e.Op)
}

func (e *EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

func emptyInput(op string) error {
	return &EmptyInputError{Op: op}
}
