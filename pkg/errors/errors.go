// Package errors provides coded errors for trihex.
//
// Every failure that reaches a user carries a [Code]. The CLI prints
// [UserMessage]; the HTTP server maps the code with [HTTPStatus]. Validation
// failures also name the offending parameter in [Error.Field], which the
// interactive prompt and the server echo back.
//
//	err := errors.Invalid("gap_size", "must be greater than zero, got %g", v)
//	if errors.IsInvalid(err) {
//	    fmt.Println(errors.FieldOf(err)) // gap_size
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidConfig, cause, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	// ErrCodeInvalidInput marks malformed input: unparsable numbers, unknown
	// parameters, oversized requests.
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	// ErrCodeInvalidConfig marks well-formed values outside their range.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	// ErrCodeInvalidFormat marks an unsupported output format.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional parameter name and cause.
type Error struct {
	Code    Code
	Field   string // parameter at fault, empty if none
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + " " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Invalid creates an INVALID_CONFIG error for field. The message should
// read as a continuation of the field name, e.g. "must be positive".
func Invalid(field, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidConfig, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err has the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FieldOf returns the parameter named by err, or "".
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// IsInvalid reports whether err is a rejected input of any kind.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidFormat:
		return true
	}
	return false
}

// HTTPStatus maps err to a response status: 400 for invalid input, 500
// otherwise.
func HTTPStatus(err error) int {
	if IsInvalid(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// UserMessage returns err without its code prefix.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Field != "" {
		return e.Field + " " + e.Message
	}
	return e.Message
}
