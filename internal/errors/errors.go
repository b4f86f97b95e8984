package errors

import "fmt"

// ErrorCode represents a tarobot error code.
type ErrorCode string

const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrNotFound            ErrorCode = "NOT_FOUND"
	ErrUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrInternal            ErrorCode = "INTERNAL"
)

// BotError represents a structured error with code and details.
type BotError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *BotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates an error for invalid input parameters.
func NewInvalidRequest(msg string) *BotError {
	return &BotError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewNotFound creates an error for a missing record. Lookup misses are a
// defined outcome, not a failure; callers branch on the code.
func NewNotFound(what string) *BotError {
	return &BotError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("not found: %s", what),
		Details: map[string]any{"subject": what},
	}
}

// NewUpstreamUnavailable creates an error for a failed fetch of an external
// data source.
func NewUpstreamUnavailable(source string, err error) *BotError {
	msg := fmt.Sprintf("upstream source unavailable: %s", source)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &BotError{
		Code:    ErrUpstreamUnavailable,
		Message: msg,
		Details: map[string]any{"source": source},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *BotError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &BotError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a BotError with the given code.
func Is(err error, code ErrorCode) bool {
	if bErr, ok := err.(*BotError); ok {
		return bErr.Code == code
	}
	return false
}
