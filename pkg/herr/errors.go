// Package herr defines the structured error type used across hoard's core
// packages. Every error that crosses a package boundary is a *HoardError so
// callers can branch on a stable ErrorCode instead of matching message text.
package herr

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a category of failure. Codes are stable across
// releases and safe to assert on in tests and in the CLI's exit-code
// mapping.
type ErrorCode string

const (
	// General
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigSemantic ErrorCode = "CONFIG_SEMANTIC"
	ErrEnvVarMissing  ErrorCode = "ENV_VAR_MISSING"

	// Condition resolution
	ErrAmbiguousCondition ErrorCode = "AMBIGUOUS_CONDITION"

	// Consistency checks
	ErrLastPathsMismatch ErrorCode = "LAST_PATHS_MISMATCH"
	ErrRemoteOperation   ErrorCode = "REMOTE_OPERATION"
	ErrUnexpectedChange  ErrorCode = "UNEXPECTED_CHANGE"

	// I/O and external collaborators
	ErrIoFailure  ErrorCode = "IO_FAILURE"
	ErrEditorExit ErrorCode = "EDITOR_EXIT"
	ErrLockHeld   ErrorCode = "LOCK_HELD"
)

// consistencyCodes are the three check-failure codes grouped
// under the umbrella term "Consistency".
var consistencyCodes = map[ErrorCode]bool{
	ErrLastPathsMismatch: true,
	ErrRemoteOperation:   true,
	ErrUnexpectedChange:  true,
}

// HoardError is a structured error with a stable code, a human message,
// optional contextual details (path, pile name, hoard name, ...), and an
// optional wrapped cause.
type HoardError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *HoardError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *HoardError) Unwrap() error {
	return e.Wrapped
}

// Is reports equality by error code, so callers can do
// errors.Is(err, herr.New(herr.ErrLockHeld, "")) style checks if they
// prefer that to GetCode.
func (e *HoardError) Is(target error) bool {
	var other *HoardError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// New creates a HoardError with no wrapped cause.
func New(code ErrorCode, message string) *HoardError {
	return &HoardError{Code: code, Message: message, Details: make(map[string]interface{})}
}

// Newf creates a HoardError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *HoardError {
	return &HoardError{Code: code, Message: fmt.Sprintf(format, args...), Details: make(map[string]interface{})}
}

// Wrap annotates an existing error with a code and message. Returns nil if
// err is nil, so it is safe to use as `return herr.Wrap(err, ...)`.
func Wrap(err error, code ErrorCode, message string) *HoardError {
	if err == nil {
		return nil
	}
	return &HoardError{Code: code, Message: message, Details: make(map[string]interface{}), Wrapped: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HoardError {
	if err == nil {
		return nil
	}
	return &HoardError{Code: code, Message: fmt.Sprintf(format, args...), Details: make(map[string]interface{}), Wrapped: err}
}

// WithDetail attaches one piece of context and returns the same error for
// chaining at the call site.
func (e *HoardError) WithDetail(key string, value interface{}) *HoardError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails merges several pieces of context at once.
func (e *HoardError) WithDetails(details map[string]interface{}) *HoardError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// Code returns the error's code, or ErrUnknown if err is not a *HoardError.
func Code(err error) ErrorCode {
	var herr *HoardError
	if errors.As(err, &herr) {
		return herr.Code
	}
	return ErrUnknown
}

// Is reports whether err has the given code.
func Is(err error, code ErrorCode) bool {
	return Code(err) == code
}

// IsConsistency reports whether err is one of the three check-failure
// codes grouped under "Consistency": LastPathsMismatch,
// RemoteOperation, UnexpectedChange.
func IsConsistency(err error) bool {
	return consistencyCodes[Code(err)]
}

// Details returns the error's detail map, or nil if err is not a
// *HoardError.
func Details(err error) map[string]interface{} {
	var herr *HoardError
	if errors.As(err, &herr) {
		return herr.Details
	}
	return nil
}
