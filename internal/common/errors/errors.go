// Package errors provides standardized error handling for the JobSwipe API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAction    ErrorCode = "INVALID_ACTION"

	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeInvalidToken         ErrorCode = "INVALID_TOKEN"
	ErrCodeAuthBackendFailed    ErrorCode = "AUTH_BACKEND_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeSuggestionLookupFailed   ErrorCode = "SUGGESTION_LOOKUP_FAILED"
	ErrCodeExpansionFailed          ErrorCode = "EXPANSION_FAILED"
	ErrCodePreferenceSaveFailed     ErrorCode = "PREFERENCE_SAVE_FAILED"

	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	ErrCodeInternal    ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidActionError creates a non-retryable unknown-action error.
func NewInvalidActionError(action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAction,
		Message:   "Invalid action",
		Details:   fmt.Sprintf("action: %s", action),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationFailedError creates a non-retryable credential error.
func NewAuthenticationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTokenError creates a non-retryable token verification error.
func NewInvalidTokenError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidToken,
		Message:   "Invalid or expired token",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthBackendFailedError creates a retryable auth backend error.
func NewAuthBackendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthBackendFailed,
		Message:   "Credential backend error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSuggestionLookupFailedError creates a retryable location suggestion error.
func NewSuggestionLookupFailedError(location string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSuggestionLookupFailed,
		Message:   "Location suggestion lookup failed",
		Details:   fmt.Sprintf("location: %s, error: %s", location, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExpansionFailedError creates a retryable expansion batch error.
func NewExpansionFailedError(city string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExpansionFailed,
		Message:   "Search expansion failed",
		Details:   fmt.Sprintf("city: %s, error: %s", city, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPreferenceSaveFailedError creates a retryable preference persistence error.
func NewPreferenceSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePreferenceSaveFailed,
		Message:   "Location preference save failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// httpStatusMapping maps internal error codes to HTTP status codes.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeValidationFailed: http.StatusBadRequest,
	ErrCodeInvalidAction:    http.StatusBadRequest,

	ErrCodeAuthenticationFailed: http.StatusUnauthorized,
	ErrCodeInvalidToken:         http.StatusUnauthorized,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeAuthBackendFailed:        http.StatusInternalServerError,
	ErrCodeDatabaseConnectionFailed: http.StatusInternalServerError,
	ErrCodeQueryExecutionFailed:     http.StatusInternalServerError,
	ErrCodeSuggestionLookupFailed:   http.StatusInternalServerError,
	ErrCodeExpansionFailed:          http.StatusInternalServerError,
	ErrCodePreferenceSaveFailed:     http.StatusInternalServerError,
	ErrCodeInternal:                 http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code for an error code.
func HTTPStatus(code ErrorCode) int {
	if status, exists := httpStatusMapping[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the code maps to a 4xx response.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatus(code)
	return status >= 400 && status < 500
}
