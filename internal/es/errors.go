package es

import "errors"

// Sentinel errors for indexed-store operations. The search executor
// degrades ErrIndexNotFound and ErrBadQuery to empty results;
// ErrUnavailable is surfaced to the caller as a retryable condition.
var (
	ErrIndexNotFound = errors.New("es: index not found")
	ErrIndexExists   = errors.New("es: index already exists")
	ErrBadQuery      = errors.New("es: malformed query or mapping mismatch")
	ErrUnavailable   = errors.New("es: backend unavailable")
)

// Op constants name the backend API calls for error context.
const (
	OpCreateIndex = "indices.create"
	OpDeleteIndex = "indices.delete"
	OpIndexExists = "indices.exists"
	OpIndexDoc    = "index"
	OpSearch      = "search"
	OpPing        = "ping"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
