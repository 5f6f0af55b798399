// internal/db/errors.go
package db

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when a driver is used before Connect
var ErrNotConnected = errors.New("not connected")

// ErrUnknownConnection is returned for ids not present in the connection set
var ErrUnknownConnection = errors.New("connection not found")

// ConnectionError wraps database connection failures
type ConnectionError struct {
	Underlying error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Underlying)
}

func (e *ConnectionError) Unwrap() error { return e.Underlying }

// QueryError wraps query execution failures
type QueryError struct {
	Underlying error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Underlying)
}

func (e *QueryError) Unwrap() error { return e.Underlying }

// UnsupportedFormatError is returned when a file cannot be imported by an engine
type UnsupportedFormatError struct {
	Path   string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unsupported file format: %s", e.Path)
	}
	return fmt.Sprintf("unsupported file format %q: %s", e.Format, e.Path)
}

// WrapConnectionError creates a ConnectionError from underlying error
func WrapConnectionError(err error) error {
	return &ConnectionError{Underlying: err}
}

// WrapQueryError creates a QueryError from underlying error
func WrapQueryError(err error) error {
	return &QueryError{Underlying: err}
}
