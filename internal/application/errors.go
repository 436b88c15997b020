package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrMalformedStorage   = errors.New("malformed storage")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NodeError reports an operation that could not be applied to a node
type NodeError struct {
	ID     int
	Reason string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %d: %s", e.ID, e.Reason)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
