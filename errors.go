package benchy

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is returned when a file or blob cannot be opened, read or written.
	ErrIO = errors.New("io error")

	// ErrCompression is returned when a compressed frame cannot be decoded or its
	// declared content size is missing or inconsistent.
	ErrCompression = errors.New("compression error")

	// ErrBadFormat is returned when a document is structurally valid but does not
	// have the expected shape (wrong arity, wrong value kind, unparsable number).
	ErrBadFormat = errors.New("bad format")

	// ErrUnsupportedFormat is returned for raw problem files that were not written
	// by the problem writer (no raw_dump_version).
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrShapeMismatch is returned when a dense matrix document has rows of
	// different lengths, or a vector has more than one column.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// ValidationError reports a single problem field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidProblem).
func (e *ValidationError) Unwrap() error { return ErrInvalidProblem }

// ErrInvalidProblem is the common cause of every ValidationError.
var ErrInvalidProblem = errors.New("invalid problem")
