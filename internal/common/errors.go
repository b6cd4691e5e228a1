// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
)

// Error is the tagged error type used across the application. Every failure
// that reaches a user surface carries one of the closed set of codes below;
// provider errors that do not map to a known code are wrapped as CodeUnknown
// with the raw provider text in Details, so new provider codes degrade to the
// generic message instead of leaking or crashing.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes errors.Is match on the code, so sentinel comparisons keep working
// for copies produced by WithDetails.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// NewError creates a tagged error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithDetails returns a copy of the error carrying extra details. It copies
// rather than mutates so the package-level sentinels stay pristine.
func (e *Error) WithDetails(details interface{}) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details}
}

// Closed code set. Authentication codes mirror the identity provider's
// user-facing failure modes; the rest cover store and flow outcomes.
const (
	CodeEmailInUse      = "EMAIL_IN_USE"
	CodeInvalidEmail    = "INVALID_EMAIL"
	CodeWeakPassword    = "WEAK_PASSWORD"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeWrongPassword   = "WRONG_PASSWORD"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeNoChanges       = "NO_CHANGES"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnknown         = "UNKNOWN"
)

var (
	ErrEmailInUse      = NewError(CodeEmailInUse, "This email address is already registered.")
	ErrInvalidEmail    = NewError(CodeInvalidEmail, "The email address is invalid.")
	ErrWeakPassword    = NewError(CodeWeakPassword, "The password is too weak.")
	ErrUserNotFound    = NewError(CodeUserNotFound, "User not found.")
	ErrWrongPassword   = NewError(CodeWrongPassword, "Incorrect password.")
	ErrTooManyRequests = NewError(CodeTooManyRequests, "Too many attempts. Try again later.")
	ErrNotFound        = NewError(CodeNotFound, "The requested record could not be found.")
	ErrUnauthenticated = NewError(CodeUnauthenticated, "You must be signed in to do that.")
	ErrNoChanges       = NewError(CodeNoChanges, "No changes to save.")
	ErrValidation      = NewError(CodeValidation, "Input validation failed.")
	ErrUnknown         = NewError(CodeUnknown, "An unexpected error occurred.")
)

// IsError extracts a tagged *Error from an error chain.
func IsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Unknownf wraps an unmapped provider failure, keeping the raw text visible.
func Unknownf(format string, args ...interface{}) *Error {
	return ErrUnknown.WithDetails(fmt.Sprintf(format, args...))
}
