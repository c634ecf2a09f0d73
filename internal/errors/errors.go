package errors

import (
	"fmt"
	"net/http"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryValidation represents request validation errors (400)
	CategoryValidation ErrorCategory = "validation"
	// CategoryAuth represents authentication errors (401)
	CategoryAuth ErrorCategory = "auth"
	// CategoryNotFound represents not found errors (404)
	CategoryNotFound ErrorCategory = "not_found"
	// CategoryConfiguration represents missing provider configuration (400)
	CategoryConfiguration ErrorCategory = "configuration"
	// CategoryUpstream represents upstream provider failures (500)
	CategoryUpstream ErrorCategory = "upstream"
	// CategorySystem represents internal system errors (500)
	CategorySystem ErrorCategory = "system"
)

// CategorizedError represents an error with category and HTTP status code.
// Message is safe to return to API callers; Cause carries the internal
// detail and is logged, never serialized.
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error (400)
func NewValidationError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    message,
	}
}

// NewAuthError creates an authentication error (401)
func NewAuthError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryAuth,
		StatusCode: http.StatusUnauthorized,
		Code:       "UNAUTHORIZED",
		Message:    message,
	}
}

// NewNotFoundError creates a not found error (404)
func NewNotFoundError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryNotFound,
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// NewConfigurationError creates a missing-configuration error. Reported as
// 400 so a missing provider credential reads as a caller-visible setup
// problem rather than a generic server failure.
func NewConfigurationError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryConfiguration,
		StatusCode: http.StatusBadRequest,
		Code:       "CONFIGURATION_ERROR",
		Message:    message,
	}
}

// NewUpstreamError creates an upstream provider error (500). The message is
// the generic text exposed to callers; cause keeps the provider detail for
// logs.
func NewUpstreamError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryUpstream,
		StatusCode: http.StatusInternalServerError,
		Code:       "UPSTREAM_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// NewInternalError creates an internal server error (500)
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategorySystem,
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// Categorize categorizes an existing error
func Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}

	// If already categorized, return as-is
	if catErr, ok := err.(*CategorizedError); ok {
		return catErr
	}

	// Default to internal error
	return NewInternalError("Internal server error", err)
}

// GetHTTPStatusCode returns the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if catErr := Categorize(err); catErr != nil {
		return catErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsUserError determines if an error is a user error (4xx)
func IsUserError(err error) bool {
	catErr := Categorize(err)
	if catErr == nil {
		return false
	}

	return catErr.StatusCode >= 400 && catErr.StatusCode < 500
}

// IsSystemError determines if an error is a system error (5xx)
func IsSystemError(err error) bool {
	catErr := Categorize(err)
	if catErr == nil {
		return false
	}

	return catErr.StatusCode >= 500
}
