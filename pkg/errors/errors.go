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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrConfigFileMissing ErrorCode = "CONFIG_FILE_MISSING"

	// Linter errors
	ErrLint        ErrorCode = "LINT"
	ErrLintOutput  ErrorCode = "LINT_OUTPUT"
	ErrLintTimeout ErrorCode = "LINT_TIMEOUT"

	// Host errors
	ErrFileRead ErrorCode = "FILE_READ"
	ErrBuild    ErrorCode = "BUILD"
	ErrWatch    ErrorCode = "WATCH"
)

// LoaderError represents a structured error with code and details
type LoaderError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LoaderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LoaderError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LoaderError) Is(target error) bool {
	var targetErr *LoaderError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LoaderError with the given code and message
func New(code ErrorCode, message string) *LoaderError {
	return &LoaderError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LoaderError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LoaderError {
	return &LoaderError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LoaderError
func Wrap(err error, code ErrorCode, message string) *LoaderError {
	if err == nil {
		return nil
	}
	return &LoaderError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LoaderError {
	if err == nil {
		return nil
	}
	return &LoaderError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LoaderError) WithDetail(key string, value interface{}) *LoaderError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var loaderErr *LoaderError
	if errors.As(err, &loaderErr) {
		return loaderErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LoaderError
func GetErrorCode(err error) ErrorCode {
	var loaderErr *LoaderError
	if errors.As(err, &loaderErr) {
		return loaderErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LoaderError
func GetErrorDetails(err error) map[string]interface{} {
	var loaderErr *LoaderError
	if errors.As(err, &loaderErr) {
		return loaderErr.Details
	}
	return nil
}
