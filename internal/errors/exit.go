package errors

import "errors"

// Exit codes for the aemgen CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid invocation input.
	ExitValidationError = 2

	// ExitContextError indicates required project context was missing.
	ExitContextError = 3

	// ExitConflictError indicates generation collided with existing state.
	ExitConflictError = 4

	// ExitPreconditionError indicates a required sibling module was absent.
	ExitPreconditionError = 5

	// ExitExternalError indicates an external lookup or build failed.
	ExitExternalError = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed records whether the command layer already printed the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrContext):
		return ExitContextError
	case errors.Is(err, ErrConflict):
		return ExitConflictError
	case errors.Is(err, ErrPrecondition):
		return ExitPreconditionError
	case errors.Is(err, ErrExternal):
		return ExitExternalError
	default:
		return ExitGeneralError
	}
}
