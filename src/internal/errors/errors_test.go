package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      &Error{Code: ErrCodeAuthFailed, Message: "router rejected credentials"},
			expected: "[AUTH_FAILED] router rejected credentials",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeTransport, "GET /auth", errors.New("connection refused")),
			expected: "[TRANSPORT_ERROR] GET /auth: connection refused",
		},
		{
			name:     "formatted message",
			err:      Newf(ErrCodeInvalidResponse, "unexpected auth status: %d", 500),
			expected: "[INVALID_RESPONSE] unexpected auth status: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestError_IsBySentinel(t *testing.T) {
	err := fmt.Errorf("login to home: %w", NewAuthFailedError("POST /auth returned 401", nil))

	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Expected wrapped auth error to match ErrAuthFailed")
	}
	if errors.Is(err, ErrTransport) {
		t.Errorf("Expected auth error not to match ErrTransport")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: ""},
		{name: "direct", err: NewInvalidResponseError("missing realm", nil), want: ErrCodeInvalidResponse},
		{name: "wrapped", err: fmt.Errorf("outer: %w", NewCredentialsError("no password", nil)), want: ErrCodeCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewTransportError(t *testing.T) {
	cause := errors.New("no route to host")
	err := NewTransportError("GET /rci/show/ip/hotspot/host", cause)

	if err.Code != ErrCodeTransport {
		t.Errorf("Expected code %v, got %v", ErrCodeTransport, err.Code)
	}
	if err.Cause != cause {
		t.Errorf("Expected cause to be preserved")
	}
}
