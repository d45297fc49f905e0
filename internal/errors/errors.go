// Package errors provides sentinel errors for the aemgen CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrContext indicates required ambient state is missing (no parent
	// project, no resolvable destination).
	ErrContext = errors.New("context error")

	// ErrConflict indicates generation would collide with existing state: a
	// second singleton module, a module-type mismatch, or differing
	// coordinates.
	ErrConflict = errors.New("conflict error")

	// ErrPrecondition indicates a required sibling module is absent.
	ErrPrecondition = errors.New("precondition error")

	// ErrExternal indicates a failed external call: metadata lookup or the
	// Maven build.
	ErrExternal = errors.New("external call failed")

	// ErrValidation indicates invalid invocation input.
	ErrValidation = errors.New("validation error")
)

// DetailError captures structured error information for user-facing output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the directory or file the error refers to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewContextError creates a context error with details.
func NewContextError(message, location, hint string) error {
	return &DetailError{
		Type:     "missing project context",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrContext,
	}
}

// NewConflictError creates a conflict error with details.
func NewConflictError(message, location, hint string) error {
	return &DetailError{
		Type:     "generation conflict",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrConflict,
	}
}

// NewPreconditionError creates a dependency-precondition error with details.
func NewPreconditionError(message, hint string) error {
	return &DetailError{
		Type:    "missing required module",
		Message: message,
		Hint:    hint,
		Cause:   ErrPrecondition,
	}
}

// NewExternalError creates an external-call error. The underlying failure is
// surfaced verbatim with a suggestion to retry manually.
func NewExternalError(message string, cause error) error {
	return &DetailError{
		Type:    "external call failed",
		Message: message + ": " + cause.Error(),
		Hint:    "Resolve the underlying problem and retry manually.",
		Cause:   fmt.Errorf("%w: %w", ErrExternal, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
