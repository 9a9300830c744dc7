// Package errors provides domain-specific error types for keen-tray.
//
// Errors carry a code so callers can tell a network problem from rejected
// credentials or a router that does not speak the expected protocol, and
// render different messaging for each.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeTransport indicates a network, DNS or connection failure.
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"

	// ErrCodeInvalidResponse indicates an unexpected status code, missing
	// protocol headers or a malformed JSON body.
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"

	// ErrCodeAuthFailed indicates the router rejected the credentials.
	ErrCodeAuthFailed ErrorCode = "AUTH_FAILED"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeCredentials indicates a failure of the secret store or a missing password.
	ErrCodeCredentials ErrorCode = "CREDENTIALS_ERROR"

	// ErrCodeNoActiveRouter indicates an operation needed a reachable router and there was none.
	ErrCodeNoActiveRouter ErrorCode = "NO_ACTIVE_ROUTER"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is matching by code.
var (
	ErrTransport       = New(ErrCodeTransport, "transport error")
	ErrInvalidResponse = New(ErrCodeInvalidResponse, "invalid response")
	ErrAuthFailed      = New(ErrCodeAuthFailed, "authentication failed")
	ErrConfig          = New(ErrCodeConfig, "configuration error")
	ErrValidation      = New(ErrCodeValidation, "validation error")
	ErrCredentials     = New(ErrCodeCredentials, "credentials error")
	ErrNoActiveRouter  = New(ErrCodeNoActiveRouter, "no active router")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Newf creates a new domain error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// NewTransportError creates a new transport error.
func NewTransportError(message string, cause error) *Error {
	return Wrap(ErrCodeTransport, message, cause)
}

// NewInvalidResponseError creates a new invalid response error.
func NewInvalidResponseError(message string, cause error) *Error {
	return Wrap(ErrCodeInvalidResponse, message, cause)
}

// NewAuthFailedError creates a new authentication failure.
func NewAuthFailedError(message string, cause error) *Error {
	return Wrap(ErrCodeAuthFailed, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewCredentialsError creates a new credentials error.
func NewCredentialsError(message string, cause error) *Error {
	return Wrap(ErrCodeCredentials, message, cause)
}

// NewNoActiveRouterError creates an error for operations that need a reachable router.
func NewNoActiveRouterError(message string) *Error {
	return New(ErrCodeNoActiveRouter, message)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
