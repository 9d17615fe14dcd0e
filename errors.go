package xlsheet

import (
	"errors"
	"fmt"
)

// Validation errors: raised by the call that introduced the bad value.
var (
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidRange     = errors.New("invalid range")
	ErrOverlappingMerge = errors.New("range overlaps an existing merge")
	ErrInvalidRotation  = errors.New("text rotation out of range")
	ErrInvalidSize      = errors.New("invalid size")
	ErrInvalidReference = errors.New("invalid cell reference")
	ErrInvalidRule      = errors.New("invalid validation rule")
)

// Lookup errors.
var (
	ErrUnknownSheet  = errors.New("unknown sheet")
	ErrUnknownColumn = errors.New("unknown column")
	ErrStyleNotFound = errors.New("style index not found")
)

// Document-level errors.
var (
	ErrNoSheets       = errors.New("workbook has no sheets")
	ErrDuplicateSheet = errors.New("duplicate sheet name")
	ErrInvalidPackage = errors.New("invalid xlsx package")
)

// ErrUnsupportedConversion is returned when a formula value is converted to
// a numeric or date type.
var ErrUnsupportedConversion = errors.New("unsupported conversion")

// ValidationError reports a construction-time failure for a single field.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, value any, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// ConversionError reports an attempt to convert a value into a type its
// variant cannot produce.
type ConversionError struct {
	From ValueKind
	To   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s value to %s", e.From, e.To)
}

func (e *ConversionError) Unwrap() error { return ErrUnsupportedConversion }
