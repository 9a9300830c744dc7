package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/log"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeForbidden indicates the caller is not allowed to use the API.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"

	// ErrCodeValidationFailed indicates request or configuration validation failed.
	ErrCodeValidationFailed ErrorCode = "validation_failed"

	// ErrCodeAuthFailed indicates the router rejected the stored credentials.
	ErrCodeAuthFailed ErrorCode = "auth_failed"

	// ErrCodeNoActiveRouter indicates no configured router is reachable.
	ErrCodeNoActiveRouter ErrorCode = "no_active_router"

	// ErrCodeCredentials indicates a missing password or a keyring failure.
	ErrCodeCredentials ErrorCode = "credentials_error"

	// ErrCodeRouterError indicates the router could not be reached or
	// answered unexpectedly.
	ErrCodeRouterError ErrorCode = "router_error"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{Code: code, Message: message}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Error: err}); encodeErr != nil {
		log.Warnf("Failed to write error response: %v", encodeErr)
	}
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteNotFound writes a 404 Not Found error.
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, resource+" not found"))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WriteValidationError writes a 400 Bad Request with validation details.
func WriteValidationError(w http.ResponseWriter, message string, details map[string]interface{}) {
	err := NewAPIError(ErrCodeValidationFailed, message).WithDetails(details)
	WriteError(w, http.StatusBadRequest, err)
}

// WriteServiceError maps a service-layer error to a status code and API
// error code by its kerrors code.
func WriteServiceError(w http.ResponseWriter, err error) {
	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]interface{}, len(validationErrs))
		for _, ve := range validationErrs {
			details[ve.FieldPath] = ve.Message
		}
		WriteValidationError(w, "Validation failed", details)
		return
	}

	switch kerrors.CodeOf(err) {
	case kerrors.ErrCodeValidation:
		WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeValidationFailed, err.Error()))
	case kerrors.ErrCodeAuthFailed:
		WriteError(w, http.StatusUnauthorized, NewAPIError(ErrCodeAuthFailed, err.Error()))
	case kerrors.ErrCodeNoActiveRouter:
		WriteError(w, http.StatusConflict, NewAPIError(ErrCodeNoActiveRouter, err.Error()))
	case kerrors.ErrCodeCredentials:
		WriteError(w, http.StatusConflict, NewAPIError(ErrCodeCredentials, err.Error()))
	case kerrors.ErrCodeTransport, kerrors.ErrCodeInvalidResponse:
		WriteError(w, http.StatusBadGateway, NewAPIError(ErrCodeRouterError, err.Error()))
	default:
		log.Errorf("Request failed: %v", err)
		WriteInternalError(w, err.Error())
	}
}
