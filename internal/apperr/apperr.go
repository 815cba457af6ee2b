// Package apperr defines the error values shared by the service and
// handler layers. Every error carries the HTTP status code it maps to,
// so handlers never have to inspect error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error wraps an underlying error together with the HTTP status code it
// should be reported with. Fields holds per-field reasons for validation
// failures and is nil otherwise.
type Error struct {
	Err            error
	HTTPStatusCode int
	Fields         map[string]string
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// Message returns the client facing text of the error.
func (e *Error) Message() string {
	return e.Err.Error()
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// Validation is a BadRequest which also reports the offending fields.
func Validation(err error, fields map[string]string) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest, Fields: fields}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// StatusOf returns the HTTP status code carried by err, or 500 when err
// is not an *Error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err (or anything it wraps) is a NotFound error.
func IsNotFound(err error) bool {
	return err != nil && StatusOf(err) == http.StatusNotFound
}
