// Package clierr defines the structured errors shared by the store and the
// CLI. Every failure carries a machine-readable code so the command layer can
// map it to an exit status without string matching.
package clierr

import (
	"errors"
	"fmt"
)

// Codes carried by Error. The store picks the code; the CLI maps it to an
// exit status.
const (
	NotFound         = "NOT_FOUND"
	AlreadyExists    = "ALREADY_EXISTS"
	Protected        = "PROTECTED"
	InvalidDirection = "INVALID_DIRECTION"
	DataCorruption   = "DATA_CORRUPTION"
	IOFailure        = "IO_FAILURE"
)

// Error is a failure with a code from the set above. DataCorruption and
// IOFailure are fatal for the invocation; the rest are domain failures that
// leave the store untouched.
type Error struct {
	Code    string
	Message string
	Err     error // wrapped cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that records err as its cause.
func Wrap(code string, err error, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// SilentError carries an exit status for a command that has already printed
// its own failure report.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error to the process exit status: 0 for nil, 2 for fatal
// codes (DataCorruption, IOFailure), 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Code {
		case DataCorruption, IOFailure:
			return 2
		}
	}
	return 1
}

// CodeOf returns the code carried by err, or the empty string for errors
// outside the taxonomy.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
