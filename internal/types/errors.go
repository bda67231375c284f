package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for Dugout errors.
type ErrorCode string

// Network error codes
const (
	NETWORK_FAILED ErrorCode = "NETWORK_FAILED"
)

// Tool error codes
const (
	TOOL_NOT_FOUND          ErrorCode = "TOOL_NOT_FOUND"
	TOOL_ALREADY_REGISTERED ErrorCode = "TOOL_ALREADY_REGISTERED"
	TOOL_MISSING_PARAMETER  ErrorCode = "TOOL_MISSING_PARAMETER"
	TOOL_UPSTREAM_FAILED    ErrorCode = "TOOL_UPSTREAM_FAILED"
)

// Workflow error codes
const (
	WORKFLOW_FAULT     ErrorCode = "WORKFLOW_FAULT"
	WORKFLOW_CANCELLED ErrorCode = "WORKFLOW_CANCELLED"
)

// Planner error codes
const (
	PLANNER_DECISION_INVALID ErrorCode = "PLANNER_DECISION_INVALID"
	PLANNER_FAILED           ErrorCode = "PLANNER_FAILED"
)

// HTTP boundary error codes
const (
	REQUEST_INVALID ErrorCode = "REQUEST_INVALID"
)

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// DugoutError is a structured error with an error code, message, and
// optional cause. Retryable hints whether the failure is transient.
type DugoutError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error formats the error as "[CODE] message" or "[CODE] message: cause".
func (e *DugoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *DugoutError) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, enabling errors.Is against sentinel
// DugoutError values.
func (e *DugoutError) Is(target error) bool {
	var derr *DugoutError
	if errors.As(target, &derr) {
		return e.Code == derr.Code
	}
	return false
}

// NewError creates a non-retryable DugoutError.
func NewError(code ErrorCode, message string) *DugoutError {
	return &DugoutError{Code: code, Message: message}
}

// NewRetryableError creates a retryable DugoutError for transient failures.
func NewRetryableError(code ErrorCode, message string) *DugoutError {
	return &DugoutError{Code: code, Message: message, Retryable: true}
}

// WrapError creates a non-retryable DugoutError wrapping an existing error.
func WrapError(code ErrorCode, message string, cause error) *DugoutError {
	return &DugoutError{Code: code, Message: message, Cause: cause}
}

// WrapRetryableError creates a retryable DugoutError wrapping an existing error.
func WrapRetryableError(code ErrorCode, message string, cause error) *DugoutError {
	return &DugoutError{Code: code, Message: message, Retryable: true, Cause: cause}
}

// CodeOf extracts the error code from err, walking the error chain.
// Returns an empty code if err is not a DugoutError.
func CodeOf(err error) ErrorCode {
	var derr *DugoutError
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ""
}
