package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCancelled     ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Materialization errors
	ErrTemplateNotFound    ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrDestinationConflict ErrorCode = "DESTINATION_CONFLICT"
	ErrCopyFailed          ErrorCode = "COPY_FAILED"
	ErrFileProcessing      ErrorCode = "FILE_PROCESSING"
	ErrHookFailed          ErrorCode = "HOOK_FAILED"

	// Rendering errors
	ErrTemplateStructure ErrorCode = "TEMPLATE_STRUCTURE"
)

// FastgenError represents a structured error with code and details
type FastgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FastgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FastgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FastgenError) Is(target error) bool {
	var targetErr *FastgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FastgenError with the given code and message
func New(code ErrorCode, message string) *FastgenError {
	return &FastgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FastgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FastgenError {
	return &FastgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FastgenError
func Wrap(err error, code ErrorCode, message string) *FastgenError {
	if err == nil {
		return nil
	}
	return &FastgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FastgenError {
	if err == nil {
		return nil
	}
	return &FastgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FastgenError) WithDetail(key string, value interface{}) *FastgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fgErr *FastgenError
	if errors.As(err, &fgErr) {
		return fgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FastgenError
func GetErrorCode(err error) ErrorCode {
	var fgErr *FastgenError
	if errors.As(err, &fgErr) {
		return fgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FastgenError
func GetErrorDetails(err error) map[string]interface{} {
	var fgErr *FastgenError
	if errors.As(err, &fgErr) {
		return fgErr.Details
	}
	return nil
}
