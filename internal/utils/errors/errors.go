package errors

import (
	"errors"
	"fmt"
)

// Common error kinds.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
)

// Error codes surfaced to UI collaborators.
const (
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError represents an application error with a stable error code.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Kind is the sentinel the error matches with errors.Is.
	Kind error `json:"-"`
	Err  error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	if e.Kind != nil && target == e.Kind {
		return true
	}
	return errors.Is(e.Err, target)
}

// StorageUnavailable wraps a key-value store failure. op names the failed operation.
func StorageUnavailable(op string, err error) *AppError {
	return &AppError{
		Code:    CodeStorageUnavailable,
		Message: op,
		Kind:    ErrStorageUnavailable,
		Err:     err,
	}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidArgument,
		Message: message,
		Kind:    ErrInvalidArgument,
		Err:     err,
	}
}

// Internal wraps a failure that has no more specific code.
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Kind:    ErrInternal,
		Err:     err,
	}
}

// CodeOf returns the error code carried by err, or CodeInternal for foreign errors.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsStorageUnavailable checks if the error is a storage failure.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

