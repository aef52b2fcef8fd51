// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code and a human-readable message.
package clierr

import (
	"fmt"
	"strconv"
)

const (
	TaskNotFound    = "TASK_NOT_FOUND"
	InvalidInput    = "INVALID_INPUT"
	InvalidDate     = "INVALID_DATE"
	InvalidRange    = "INVALID_RANGE"
	InvalidTheme    = "INVALID_THEME"
	ConfirmationReq = "CONFIRMATION_REQUIRED"
	ConfigError     = "CONFIG_ERROR"
	InternalError   = "INTERNAL_ERROR"
)

type Error struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2
	}
	return 1
}

// SilentError signals an exit code without additional output.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
