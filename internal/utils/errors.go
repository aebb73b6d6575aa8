package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned when the backend rejects the bearer token
var ErrUnauthorized = errors.New("credential rejected by server")

// ErrNotLoggedIn is returned when a protected command runs without a session
var ErrNotLoggedIn = errors.New("not logged in")

// APIError represents a non-2xx response from the case data API
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// AuthError is the single failure kind of the auth endpoints. Rejected
// credentials and transport failures both surface as an AuthError; StatusCode
// is zero when no response was received.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error returns the user-facing message
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap exposes the transport error, if any
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates an auth error from a backend response
func NewAuthError(statusCode int, message string) *AuthError {
	return &AuthError{StatusCode: statusCode, Message: message}
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// ValidationError represents a local input format error. It never reaches
// the network.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError reports whether err is a local validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
