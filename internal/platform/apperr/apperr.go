// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the
media catalog.

It provides a rich error type that bridges the gap between low-level
storage errors and the closed error vocabulary the repository surfaces to
its callers: NotFound, Validation, Conflict, Repository, Serialization.

Every error that leaves a repository or collaborator should be wrapped as
an [AppError] so that callers can pattern-match on Code rather than on
driver-specific error values.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the media catalog.
//
// It carries an HTTP status code (for transports that want one), a
// machine-readable code, a client-safe message, and an optional slice of
// field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to
// clients to avoid leaking internal implementation details (e.g., SQL
// queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code a transport may use.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the name of the field or argument that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # NotFound kind

// NotFound creates an [AppError] for a referenced entity that does not
// exist, identified by kind ("Medium", "Source", "Tag", "TagType", ...)
// and the id that was looked up.
func NotFound(kind, id string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    kind + " not found: " + id,
		HTTPStatus: http.StatusNotFound,
	}
}

// # Validation kind

// ValidationError creates an [AppError] for a contract violation on the
// caller's input, with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// ReplicaOrderMismatch creates the specific [AppError] raised when a
// replica_order argument is not a permutation of the medium's current
// replica ids.
func ReplicaOrderMismatch(mediumID string) *AppError {
	return &AppError{
		Code:       "REPLICA_ORDER_MISMATCH",
		Message:    "replica_order is not a permutation of the current replicas of medium " + mediumID,
		HTTPStatus: http.StatusBadRequest,
	}
}

// # Conflict kind

// Conflict creates an [AppError] for a unique-constraint violation on a
// concurrent write. The caller may retry.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// # Repository kind

// Internal creates an [AppError] wrapping an opaque lower-layer storage
// failure. The cause is stored for logging but is never sent to the
// client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "an unexpected storage error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Serialization kind

// Serialization creates an [AppError] for a malformed opaque value that
// could not be decoded, such as a cursor string or a jsonb payload whose
// shape does not match its declared external-service slug.
func Serialization(msg string, cause error) *AppError {
	return &AppError{
		Code:       "SERIALIZATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
