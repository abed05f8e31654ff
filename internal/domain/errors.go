// Package domain provides the diary record type and canonical error types
// shared by the store, the middleware chain, and the route handlers.
package domain

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	// ErrorTypeValidation indicates a malformed or invalid client input.
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeAuthentication indicates a missing or mismatched credential.
	ErrorTypeAuthentication ErrorType = "authentication"

	// ErrorTypeNotFound indicates a referenced record does not exist.
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeRateLimit indicates the request was shed by the rate limiter.
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeServer indicates a storage or internal failure.
	ErrorTypeServer ErrorType = "server"
)

// ErrorCode provides additional specificity beyond the error type.
type ErrorCode string

const (
	ErrorCodeInvalidAPIKey     ErrorCode = "invalid_api_key"
	ErrorCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"
	ErrorCodeRecordNotFound    ErrorCode = "record_not_found"
	ErrorCodeInvalidField      ErrorCode = "invalid_field"
)

// APIError is the canonical error returned by every layer of the pipeline.
// Middleware rejections and handler failures are all surfaced as APIErrors
// so the response body shape is uniform.
type APIError struct {
	// Type is the category of error
	Type ErrorType `json:"type"`

	// Code is an optional specific error code
	Code ErrorCode `json:"code,omitempty"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// Param is the field or parameter that caused the error (if applicable)
	Param string `json:"param,omitempty"`

	// StatusCode is the suggested HTTP status code
	StatusCode int `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s (%s): %s", e.Type, e.Param, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// HTTPStatusCode returns the appropriate HTTP status code for this error.
func (e *APIError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}

	switch e.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeAuthentication:
		return http.StatusUnauthorized
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeRateLimit:
		return http.StatusTooManyRequests
	case ErrorTypeServer:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WithCode adds an error code to the error.
func (e *APIError) WithCode(code ErrorCode) *APIError {
	e.Code = code
	return e
}

// ErrValidation creates a validation error for a specific field.
func ErrValidation(field, reason string) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Code:    ErrorCodeInvalidField,
		Message: reason,
		Param:   field,
	}
}

// ErrAuthentication creates an authentication error. The message is uniform
// for missing and mismatched credentials so the response leaks nothing about
// which check failed.
func ErrAuthentication() *APIError {
	return &APIError{
		Type:    ErrorTypeAuthentication,
		Code:    ErrorCodeInvalidAPIKey,
		Message: "invalid or missing API key",
	}
}

// ErrNotFound creates a not-found error.
func ErrNotFound(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Code:    ErrorCodeRecordNotFound,
		Message: message,
	}
}

// ErrRateLimit creates a rate-limit error.
func ErrRateLimit() *APIError {
	return &APIError{
		Type:    ErrorTypeRateLimit,
		Code:    ErrorCodeRateLimitExceeded,
		Message: "too many requests",
	}
}

// ErrServer creates an internal server error. Callers must not put
// connection strings or credentials in the message.
func ErrServer(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServer,
		Message: message,
	}
}
