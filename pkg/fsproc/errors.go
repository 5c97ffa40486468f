package fsproc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := execution.Execute(ctx)
//	if errors.Is(err, fsproc.ErrResolutionFailed) {
//	    // The path argument could not be turned into files
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidArgument indicates a call argument is missing or has the wrong type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownProcedure indicates a call named a procedure the connector never declared.
	// It is an internal consistency fault and is never retried.
	ErrUnknownProcedure = errors.New("unknown procedure")

	// ErrDuplicateProcedure indicates a procedure was declared twice in one catalog.
	ErrDuplicateProcedure = errors.New("duplicate procedure")

	// ErrResolutionFailed indicates the connection could not resolve a path argument to files.
	ErrResolutionFailed = errors.New("resolution failed")

	// ErrInvalidPattern indicates a malformed wildcard pattern.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidPath indicates a location outside the allowed directory tree.
	ErrInvalidPath = errors.New("invalid path")

	// ErrFileNotFound indicates nothing matched and the connection is configured to fail on that.
	ErrFileNotFound = errors.New("file not found")

	// ErrContentUnavailable indicates a resolved file could not be opened for reading.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrUnsupportedEncoding indicates an unknown character encoding name.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrConnectionFailed indicates a connection could not be acquired.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionClosed indicates an operation on a connection after Close.
	ErrConnectionClosed = errors.New("connection closed")
)

// ExecutionError wraps a failure of one execution step with the step name.
// It is the translatable error surfaced to the engine driving the call.
type ExecutionError struct {
	Operation string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates a new ExecutionError. Returns nil for a nil err.
func NewExecutionError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ExecutionError{
		Operation: operation,
		Err:       err,
	}
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrUnknownProcedure),
		errors.Is(err, ErrDuplicateProcedure),
		errors.Is(err, ErrUnsupportedEncoding):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed),
		errors.Is(err, ErrConnectionClosed):
		return ExitConnectionError
	case errors.Is(err, ErrResolutionFailed),
		errors.Is(err, ErrContentUnavailable):
		return ExitExecutionFailed
	case errors.Is(err, ErrInvalidArgument):
		return ExitUsageError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, pattern := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
	} {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
