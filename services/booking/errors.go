package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a booking failure for the HTTP boundary.
type Code string

const (
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeNotFound          Code = "not_found"
	CodeInvalidArgument   Code = "invalid_argument"
	CodeInvalidTransition Code = "invalid_transition"
	CodeInternal          Code = "internal"
)

// Error is returned by every BookingService operation that fails.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func internalError(msg string, err error) error {
	return &Error{Code: CodeInternal, Message: msg, Err: err}
}

// ErrorCode extracts the Code from err, defaulting to CodeInternal.
func ErrorCode(err error) Code {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternal
}

// HTTPStatus maps a booking error code to its HTTP status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument, CodeInvalidTransition:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to show to a client. Internal errors are never exposed.
func PublicMessage(err error) string {
	var be *Error
	if errors.As(err, &be) && be.Code != CodeInternal {
		return be.Message
	}
	return "Internal Server Error"
}
