package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
	ErrUnavailable   = errors.New("db: engine unavailable")
)

// Op constants name the engine API an error came from.
const (
	OpPing        = "PING"
	OpSearch      = "SEARCH"
	OpCount       = "COUNT"
	OpCreateIndex = "INDICES.CREATE"
	OpDeleteIndex = "INDICES.DELETE"
	OpIndexExists = "INDICES.EXISTS"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ResponseError is an error reply of the engine.
type ResponseError struct {
	Status int
	Type   string
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("engine returned status %d", e.Status)
	}
	return fmt.Sprintf("engine returned status %d: %s: %s", e.Status, e.Type, e.Reason)
}

// Unwrap maps well known engine error types onto sentinels.
func (e *ResponseError) Unwrap() error {
	switch e.Type {
	case "index_not_found_exception":
		return ErrIndexNotFound
	case "resource_already_exists_exception":
		return ErrIndexExists
	}
	return nil
}
