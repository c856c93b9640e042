package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates an entity was not found in the workspace
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation indicates an invalid request from the caller
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeMalformedInput indicates a persisted document that cannot be restored
	ErrorTypeMalformedInput ErrorType = "malformed_input"
	// ErrorTypeUnsupportedSource indicates a generation path needing a disabled book or source
	ErrorTypeUnsupportedSource ErrorType = "unsupported_source"
	// ErrorTypeInternal indicates an unexpected failure
	ErrorTypeInternal ErrorType = "internal"
)

// AppError is the base error type for application errors
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFoundf creates a not found error with formatting
func NotFoundf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validationf creates a validation error with formatting
func Validationf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// MalformedInputf creates a malformed input error with formatting
func MalformedInputf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeMalformedInput,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapMalformedInput wraps a decoding failure as a malformed input error
func WrapMalformedInput(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeMalformedInput,
		Message: message,
		Err:     err,
	}
}

// UnsupportedSourcef creates an unsupported source error with formatting
func UnsupportedSourcef(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeUnsupportedSource,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// GetType returns the error type of an error
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
