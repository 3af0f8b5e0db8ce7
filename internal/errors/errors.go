package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller supplied an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeUnaffordable indicates an action cost could not be paid
	CodeUnaffordable Code = "unaffordable"

	// CodeIncompatible indicates a type-incompatible assignment was rejected
	CodeIncompatible Code = "incompatible"

	// CodeIllegalState indicates an operation is not legal in the current state
	CodeIllegalState Code = "illegal_state"

	// CodeInternal indicates an internal system error
	CodeInternal Code = "internal"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, preserving an existing code
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var coreErr *Error
	if errors.As(err, &coreErr) {
		return &Error{
			Code:    coreErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(coreErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// Unaffordable creates an unaffordable error
func Unaffordable(message string) *Error {
	return New(CodeUnaffordable, message)
}

// Incompatible creates a type-incompatible error
func Incompatible(message string) *Error {
	return New(CodeIncompatible, message)
}

// Incompatiblef creates a formatted type-incompatible error
func Incompatiblef(format string, args ...any) *Error {
	return Newf(CodeIncompatible, format, args...)
}

// IllegalState creates an illegal state error
func IllegalState(message string) *Error {
	return New(CodeIllegalState, message)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// GetCode extracts the code from an error, returning CodeUnknown for foreign errors
func GetCode(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Code
	}
	return CodeUnknown
}

// IsCode checks whether an error carries the given code
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// IsNotFound checks whether an error is a not found error
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// IsIncompatible checks whether an error is a type-incompatible error
func IsIncompatible(err error) bool {
	return IsCode(err, CodeIncompatible)
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
