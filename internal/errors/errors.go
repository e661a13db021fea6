package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
)

// AppError represents an application-specific error
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Cause      error  `json:"-"`
	File       string `json:"file,omitempty"`
	Line       int    `json:"line,omitempty"`
	Operation  string `json:"operation,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code, message string, cause error) *AppError {
	_, file, line, _ := runtime.Caller(1)
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
		File:    file,
		Line:    line,
	}
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithStatus records the provider HTTP status that produced the error
func (e *AppError) WithStatus(status int) *AppError {
	e.StatusCode = status
	return e
}

// Common error codes
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeValidationError = "VALIDATION_ERROR"

	// Provider failure taxonomy
	ErrCodeConfiguration = "CONFIGURATION_ERROR"
	ErrCodeTransient     = "TRANSIENT_ERROR"
	ErrCodePermanent     = "PERMANENT_ERROR"
	ErrCodeParse         = "PARSE_ERROR"
)

// Common error constructors
func InvalidInput(message string, cause error) *AppError {
	return NewAppError(ErrCodeInvalidInput, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return NewAppError(ErrCodeInternalError, message, cause)
}

func ValidationError(message string, cause error) *AppError {
	return NewAppError(ErrCodeValidationError, message, cause)
}

// ConfigurationError marks a provider whose credential is not configured
func ConfigurationError(message string) *AppError {
	return NewAppError(ErrCodeConfiguration, message, nil)
}

// TransientError marks a timeout, connection failure, 5xx or 429
func TransientError(message string, cause error) *AppError {
	return NewAppError(ErrCodeTransient, message, cause)
}

// PermanentError marks a 4xx failure that must not be retried
func PermanentError(message string, cause error) *AppError {
	return NewAppError(ErrCodePermanent, message, cause)
}

// ParseError marks a malformed or empty provider payload
func ParseError(message string, cause error) *AppError {
	return NewAppError(ErrCodeParse, message, cause)
}

// FromStatus classifies a non-2xx provider response
func FromStatus(status int, message string) *AppError {
	if status == http.StatusTooManyRequests || status >= 500 {
		return TransientError(message, nil).WithStatus(status)
	}
	return PermanentError(message, nil).WithStatus(status)
}

// Code returns the AppError code anywhere in err's chain, or "" if none
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// StatusCode returns the provider HTTP status carried by err, or 0
func StatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

// IsConfiguration reports whether err is a missing-credential error
func IsConfiguration(err error) bool {
	return Code(err) == ErrCodeConfiguration
}

// IsRetryable reports whether err is transient and may succeed on retry
func IsRetryable(err error) bool {
	return Code(err) == ErrCodeTransient
}

// IsValidation reports whether err is a rejected input
func IsValidation(err error) bool {
	code := Code(err)
	return code == ErrCodeValidationError || code == ErrCodeInvalidInput
}

// AsAppError returns the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}
