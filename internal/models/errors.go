package models

import (
	"errors"
	"fmt"
)

// ErrInsufficientHistory signals that a dataset does not carry enough
// usable records for delta metrics or growth estimation.
var ErrInsufficientHistory = errors.New("not enough historical data")

// SchemaError reports malformed tabular input: missing columns,
// unparseable dates, non-numeric cells, duplicate dates.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Reason
}

func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}

// ParameterError reports scenario parameters rejected before computation.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}
