// Package apperr defines the error taxonomy shared across the service:
// validation failures, missing records, store failures, and export
// formatting failures. Handlers map these to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError indicates malformed caller-supplied input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation creates a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a record id that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound creates a NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// StoreError wraps an underlying read/write failure.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError. Returns nil if err is nil.
func Store(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: err}
}

// FormatError wraps an export encoding failure.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string { return e.Err.Error() }
func (e *FormatError) Unwrap() error { return e.Err }

// Format wraps err as a FormatError. Returns nil if err is nil.
func Format(err error) error {
	if err == nil {
		return nil
	}
	return &FormatError{Err: err}
}

// HTTPStatus maps an error to the response status code: 400 for validation,
// 404 for missing records, 500 otherwise.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
