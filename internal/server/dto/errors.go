// Package dto defines API request/response types and error handling.
//
// This package contains the types used for HTTP API communication:
//   - Request types with query/json struct tags for parameter binding
//   - Response types for JSON serialization
//   - Structured error types with HTTP status codes and error codes
//
// The dto package is the API contract layer and does not import the domain
// packages. Conversion from domain errors is handled by the handlers package.
//
// Error handling follows a structured pattern:
//   - ErrorCode provides machine-readable error classification
//   - APIError wraps errors with HTTP status codes and details
//   - Constructor functions (NotFound, BadRequest, etc.) create common errors
package dto

import (
	"fmt"
	"maps"
	"net/http"
)

// ErrorCode defines specific error types for the API.
type ErrorCode string

const (
	// ErrorCodeValidationFailed is returned when input data fails validation.
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrorCodeMissingField is returned when a required field is missing.
	ErrorCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrorCodeInvalidPath is returned when a document path escapes the content root.
	ErrorCodeInvalidPath ErrorCode = "INVALID_PATH"
	// ErrorCodeNotFound is returned when a document is not found.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrorCodeAlreadyExists is returned when a document already exists.
	ErrorCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrorCodeSameSource is returned when a rename targets its own source.
	ErrorCodeSameSource ErrorCode = "SAME_SOURCE"
	// ErrorCodePayloadTooLarge is returned when a body or document is above its size cap.
	ErrorCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	// ErrorCodeCompileError is returned when a document fails to compile.
	ErrorCodeCompileError ErrorCode = "COMPILE_ERROR"

	// ErrorCodeForbidden is returned when the gateway is disabled.
	ErrorCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrorCodeRateLimited is returned when a caller exceeds its request rate.
	ErrorCodeRateLimited ErrorCode = "RATE_LIMITED"

	// ErrorCodeInternal is returned when an unexpected server error occurs.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetails defines the structured error information in a response.
type ErrorDetails struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error   ErrorDetails   `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorWithStatus is an error that includes an HTTP status code and error code.
type ErrorWithStatus interface {
	Error() string
	StatusCode() int
	Code() ErrorCode
	Details() map[string]any
}

// APIError is a concrete error type with status code and optional details.
type APIError struct {
	statusCode int
	code       ErrorCode
	message    string
	details    map[string]any
	wrappedErr error
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, code ErrorCode, message string) *APIError {
	return &APIError{
		statusCode: statusCode,
		code:       code,
		message:    message,
		details:    make(map[string]any),
	}
}

// WithDetails adds details to the error.
func (e *APIError) WithDetails(details map[string]any) *APIError {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	maps.Copy(e.details, details)
	return e
}

// WithDetail adds a single detail to the error.
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	e.details[key] = value
	return e
}

// Wrap wraps an underlying error.
func (e *APIError) Wrap(err error) *APIError {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrappedErr)
	}
	return e.message
}

// StatusCode returns the HTTP status code.
func (e *APIError) StatusCode() int {
	return e.statusCode
}

// Code returns the error code.
func (e *APIError) Code() ErrorCode {
	return e.code
}

// Details returns additional error details.
func (e *APIError) Details() map[string]any {
	return e.details
}

// Unwrap returns the wrapped error if any.
func (e *APIError) Unwrap() error {
	return e.wrappedErr
}

// Predefined error constructors for common cases

// InvalidPath creates a 403 error for a path rejected by the sandbox.
func InvalidPath(path, reason string) *APIError {
	return NewAPIError(http.StatusForbidden, ErrorCodeInvalidPath, "invalid path: "+reason).WithDetail("path", path)
}

// NotFound creates a 404 Not Found error.
func NotFound(resource string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeNotFound, resource+" not found")
}

// AlreadyExists creates a 409 Conflict error.
func AlreadyExists(resource string) *APIError {
	return NewAPIError(http.StatusConflict, ErrorCodeAlreadyExists, resource+" already exists")
}

// SameSource creates a 400 error for a rename onto itself.
func SameSource() *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeSameSource, "source and destination are the same")
}

// PayloadTooLarge creates a 413 error. size is 0 when unknown, such as when
// the request body was cut off.
func PayloadTooLarge(limit, size int64) *APIError {
	e := NewAPIError(http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge, fmt.Sprintf("payload exceeds %d bytes", limit)).
		WithDetail("limit", limit)
	if size > 0 {
		e.WithDetail("size", size)
	}
	return e
}

// CompileError creates a 422 error carrying the failure position. line and
// column are 0 when unknown.
func CompileError(message string, line, column int, snippet string) *APIError {
	return NewAPIError(http.StatusUnprocessableEntity, ErrorCodeCompileError, message).
		WithDetails(map[string]any{"line": line, "column": column, "snippet": snippet})
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeValidationFailed, message)
}

// MissingField creates a 400 Bad Request error for a missing field.
func MissingField(fieldName string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeMissingField, "Missing required field: "+fieldName)
}

// Forbidden returns a 403 Forbidden error.
func Forbidden(message string) *APIError {
	return NewAPIError(http.StatusForbidden, ErrorCodeForbidden, message)
}

// RateLimitExceeded creates a 429 error. retryAfter is in seconds.
func RateLimitExceeded(retryAfter int) *APIError {
	return NewAPIError(http.StatusTooManyRequests, ErrorCodeRateLimited, "rate limit exceeded").
		WithDetail("retry_after", retryAfter)
}

// Internal returns a 500 Internal Server Error.
func Internal(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrorCodeInternal, message)
}

// InternalWithError creates a 500 error wrapping an underlying error.
func InternalWithError(message string, err error) *APIError {
	return Internal(message).Wrap(err)
}
