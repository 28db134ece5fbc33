package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError for callers that branch on failure kind.
type ErrorType string

const (
	// Local errors, raised before any I/O happens.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// Resource errors.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	ErrorTypeConflict ErrorType = "CONFLICT"

	// Remote errors.
	ErrorTypeAPI    ErrorType = "API"    // non-2xx response from the backend
	ErrorTypeFormat ErrorType = "FORMAT" // response body not in the expected shape

	// Infrastructure errors.
	ErrorTypeInternal ErrorType = "INTERNAL"
	ErrorTypeDatabase ErrorType = "DATABASE"
)

// AppError is the application-wide error carrier.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Cause      error     `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewValidationErrorf creates a validation error with a formatted message.
func NewValidationErrorf(format string, args ...interface{}) *AppError {
	return NewValidationError(fmt.Sprintf(format, args...))
}

// NewNotFoundError creates a not found error for a resource ("Link", "Category", ...).
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewAPIError creates an error for a non-2xx backend response. The message is
// what the backend reported, or a synthesized "request failed with status N".
func NewAPIError(status int, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &AppError{
		Type:       ErrorTypeAPI,
		Message:    message,
		HTTPStatus: status,
	}
}

// NewFormatError creates an error for a response that could not be decoded.
func NewFormatError(message string) *AppError {
	if message == "" {
		message = "unexpected response format"
	}
	return &AppError{
		Type:       ErrorTypeFormat,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewDatabaseError creates a database error.
func NewDatabaseError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeDatabase,
		Message:    fmt.Sprintf("database operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type.
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

// IsAPI checks if an error represents a non-2xx backend response.
func IsAPI(err error) bool {
	return IsType(err, ErrorTypeAPI)
}

// IsFormat checks if an error represents an undecodable backend response.
func IsFormat(err error) bool {
	return IsType(err, ErrorTypeFormat)
}

// Wrap wraps an error with additional context, preserving the AppError type
// when there is one.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}
