package jsonadapt

import (
	"errors"
	"fmt"
)

// Error codes carried by LoadError and TypeMismatchError.
const (
	CodeTypeMismatch   = "type_mismatch"
	CodeReadError      = "read_error"
	CodeParseError     = "parse_error"
	CodeUnknownBackend = "unknown_backend"
	CodeDuplicateKey   = "duplicate_key"
	CodeTruncated      = "truncated"
)

// ErrTypeMismatch is matched by every *TypeMismatchError via errors.Is.
var ErrTypeMismatch = errors.New("jsonadapt: type mismatch")

// TypeMismatchError reports a typed accessor called on a value of another type.
type TypeMismatchError struct {
	Op   string // Accessor name, e.g. "Str".
	Want Type
	Got  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("jsonadapt: %s: expected %s, got %s", e.Op, e.Want, e.Got)
}

// Code returns CodeTypeMismatch.
func (e *TypeMismatchError) Code() string { return CodeTypeMismatch }

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// LoadError reports a document that could not be turned into an Adapter.
type LoadError struct {
	Path string // Empty for in-memory input.
	Kind Kind
	Code string // One of CodeReadError, CodeParseError, CodeUnknownBackend, CodeDuplicateKey, CodeTruncated.
	// Pointer locates the offending value for enforcement failures (JSON Pointer).
	Pointer string
	Cause   error
}

func (e *LoadError) Error() string {
	src := e.Path
	if src == "" {
		src = "<input>"
	}
	msg := fmt.Sprintf("jsonadapt: load %s with %s: %s", src, e.Kind, e.Code)
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Cause }

// AsLoadError extracts a *LoadError from err using errors.As.
func AsLoadError(err error) (*LoadError, bool) {
	if err == nil {
		return nil, false
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

func mismatch(op string, want, got Type) error {
	return &TypeMismatchError{Op: op, Want: want, Got: got}
}
