package state

import (
	"errors"
	"fmt"

	"github.com/nhath/ducky/internal/db"
)

// ValidationError is reported inline in the active modal and never advances
// a workflow phase
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FilesystemError is a failed directory listing
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("cannot list %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Engine error categories
const (
	CategoryConnection  = "connection"
	CategoryQuery       = "query"
	CategoryUnsupported = "unsupported format"
	CategoryUnknown     = "engine"
)

// EngineError is a failure reported by the gateway
type EngineError struct {
	Op       string
	Category string
	Reason   string
	Err      error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Reason)
}

func (e *EngineError) Unwrap() error { return e.Err }

// InternalInvariantError marks a refused operation that correct code never
// attempts
type InternalInvariantError struct {
	What string
}

func (e *InternalInvariantError) Error() string {
	return "internal error: " + e.What
}

// NewEngineError classifies a gateway error for op
func NewEngineError(op string, err error) *EngineError {
	ee := &EngineError{Op: op, Category: CategoryUnknown, Reason: err.Error(), Err: err}

	var ufe *db.UnsupportedFormatError
	var ce *db.ConnectionError
	var qe *db.QueryError
	switch {
	case errors.As(err, &ufe):
		ee.Category = CategoryUnsupported
	case errors.As(err, &ce):
		ee.Category = CategoryConnection
	case errors.As(err, &qe):
		ee.Category = CategoryQuery
	case errors.Is(err, db.ErrNotConnected), errors.Is(err, db.ErrUnknownConnection):
		ee.Category = CategoryConnection
	}
	return ee
}
