// Package errors defines the structured error codes shared by the update
// subsystem and the host commands.
package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	CodeUnknown Code = "unknown"

	// Update check errors. None of these are shown to the user.
	CodeParseFailed       Code = "parse_failed"
	CodeFetchFailed       Code = "fetch_failed"
	CodeNoQualifyingAsset Code = "no_qualifying_asset"

	// Handoff errors. These are reported through the host notifier.
	CodeUpdaterMissing       Code = "updater_missing"
	CodeUpdaterNotExecutable Code = "updater_not_executable"
	CodeHandoffFailed        Code = "handoff_failed"

	CodeConfigurationError Code = "configuration_error"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// UserVisible reports whether an error of this code must be surfaced to the
// user. Only handoff failures qualify; a failed check leaves the running
// application untouched and is logged instead.
func (c Code) UserVisible() bool {
	switch c {
	case CodeUpdaterMissing, CodeUpdaterNotExecutable, CodeHandoffFailed:
		return true
	default:
		return false
	}
}

// MessageOf returns the message of the first structured error in the chain,
// falling back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var structured Error
	if errors.As(err, &structured) && structured.Message != "" {
		return structured.Message
	}
	return err.Error()
}
