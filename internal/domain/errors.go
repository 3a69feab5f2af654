// Package domain defines the error taxonomy shared by all conversion
// operations. Every failure that crosses the handler boundary is either
// a *domain.Error or gets reported as a generic transformation failure.
package domain

import (
	"errors"
	"net/http"
)

// Code classifies a conversion failure.
type Code string

const (
	// CodeMissingInput signals a required file or form field was absent.
	CodeMissingInput Code = "missing_input"

	// CodeInvalidParameter signals a present but unusable parameter,
	// e.g. a non-positive page count or an unsupported format name.
	CodeInvalidParameter Code = "invalid_parameter"

	// CodeParseFailure signals malformed caller-supplied content such as
	// invalid JSON or invalid base64 text.
	CodeParseFailure Code = "parse_failure"

	// CodeTransformationFailure signals the underlying capability failed.
	CodeTransformationFailure Code = "transformation_failure"
)

// Error carries a classification code, a message safe to return to the
// caller, and the wrapped cause which is logged but never echoed.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error code to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeMissingInput, CodeInvalidParameter, CodeParseFailure:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MissingInput builds a missing-input error.
func MissingInput(message string) *Error {
	return &Error{Code: CodeMissingInput, Message: message}
}

// InvalidParameter builds an invalid-parameter error.
func InvalidParameter(message string) *Error {
	return &Error{Code: CodeInvalidParameter, Message: message}
}

// ParseFailure builds a parse-failure error wrapping its cause.
func ParseFailure(message string, err error) *Error {
	return &Error{Code: CodeParseFailure, Message: message, Err: err}
}

// TransformationFailure builds a transformation-failure error wrapping
// its cause.
func TransformationFailure(message string, err error) *Error {
	return &Error{Code: CodeTransformationFailure, Message: message, Err: err}
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
