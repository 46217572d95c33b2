// Package apperr carries the error taxonomy surfaced to HTTP callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for the caller.
type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUpstreamFailure Code = "UPSTREAM_FAILURE"
	CodeUnsupportedType Code = "UNSUPPORTED_MEDIA_TYPE"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// Error is an error with a code and a message safe to show to callers.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode maps the code to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnsupportedType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

func BadRequest(message string) *Error {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Upstream(err error) *Error {
	return Wrap(err, CodeUpstreamFailure, "upstream request failed")
}

// From returns err as an *Error, classifying anything else as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "Internal server error")
}
