package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTypeMapping     = errors.New("unmapped engine type")
	ErrInvalidLiteral  = errors.New("value cannot be embedded as a SQL literal")
	ErrCursorClosed    = errors.New("cursor is closed")
	ErrNoCurrentRow    = errors.New("cursor is not positioned on a row")
	ErrColumnIndex     = errors.New("column index out of range")
	ErrRowShape        = errors.New("row does not match schema")
	ErrNullInNotNull   = errors.New("null value in non-nullable column")
	ErrUnsupportedType = errors.New("unsupported column type")
	ErrValueEncoding   = errors.New("value cannot be encoded for column type")
)

// TypeMappingError reports an engine type the registry has no entry for.
// It signals a registry defect and is never converted to an empty result.
type TypeMappingError struct {
	Name string
}

func (e *TypeMappingError) Error() string {
	return fmt.Sprintf("%v: %q", ErrTypeMapping, e.Name)
}

func (e *TypeMappingError) Unwrap() error {
	return ErrTypeMapping
}

// QueryExecutionError wraps a failure while running or reading a catalog query.
type QueryExecutionError struct {
	Op  string
	Err error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}
