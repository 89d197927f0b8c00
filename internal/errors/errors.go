// Package errors provides the standardized error type shared by the service,
// storage and UI layers. The core pipeline packages return plain errors; they
// are wrapped into AppErrors at the service boundary.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidExpression ErrorCode = "INVALID_EXPRESSION"
	ErrCodeInvalidFormat     ErrorCode = "INVALID_FORMAT"
	ErrCodeDateParse         ErrorCode = "DATE_PARSE_ERROR"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileCorrupted  ErrorCode = "FILE_CORRUPTED"

	// Everything else
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents how loudly an error should surface
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode
	Message   string
	Details   string
	Severity  ErrorSeverity
	Cause     error
	Timestamp time.Time
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severityOf(code),
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// ValidationError creates a validation failure error
func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

// NotFoundError creates an error for a missing resource
func NotFoundError(resource, id string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found: %s", resource, id))
}

// StorageError wraps a filesystem failure
func StorageError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeStorageFailure, fmt.Sprintf("storage operation failed: %s", operation))
}

// EvalError wraps an expression evaluation failure
func EvalError(cause error) *AppError {
	return Wrap(cause, ErrCodeInvalidExpression, "expression evaluation failed")
}

// severityOf determines severity based on error code
func severityOf(code ErrorCode) ErrorSeverity {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidExpression, ErrCodeInvalidFormat, ErrCodeDateParse, ErrCodeAlreadyExists:
		return SeverityWarning
	case ErrCodeNotFound:
		return SeverityInfo
	case ErrCodeInternalError:
		return SeverityCritical
	default:
		return SeverityError
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, wrapping foreign errors as
// internal failures
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, err.Error())
}
