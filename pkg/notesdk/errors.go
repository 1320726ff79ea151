package notesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/notes/pkg/httpx"
)

// ============================================================================
// APIError - the {success:false, error, message} response
// ============================================================================

// APIError is the error body returned by every endpoint. It implements the
// error interface so the SDK can hand it back to callers, and WriteError so
// handlers can write it.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Kind is the error category, e.g. "Unauthorized" or "Validation Error"
	Kind string `json:"error"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

// Is matches another *APIError with the same status and kind, so callers can
// write errors.Is(err, notesdk.ErrUnauthorized) regardless of the message.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Kind == t.Kind
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Kind, e.Message)
}

// WithMessage returns a copy of e carrying a different message.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Kind: e.Kind, Message: msg}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       httpx.KindValidation,
		Message:    "Invalid request",
	}

	// ErrInvalidBody is returned when the request body is not a JSON object.
	ErrInvalidBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       httpx.KindValidation,
		Message:    "Request body must be a JSON object",
	}

	// ErrInvalidID is returned when a path id is not a well-formed identifier.
	ErrInvalidID = &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       httpx.KindInvalidID,
		Message:    "Invalid note ID format",
	}

	// ErrInvalidState is returned when the OAuth state does not match the cookie.
	ErrInvalidState = &APIError{
		StatusCode: http.StatusBadRequest,
		Kind:       httpx.KindBadRequest,
		Message:    "Invalid state",
	}

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so the response cannot be used to probe for accounts.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       httpx.KindUnauthorized,
		Message:    "Invalid credentials",
	}

	// ErrInvalidRefreshToken is returned when a refresh token is invalid,
	// expired, revoked or already rotated.
	ErrInvalidRefreshToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       httpx.KindUnauthorized,
		Message:    "Invalid refresh token",
	}

	// ErrUnauthorized is the generic 401.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       httpx.KindUnauthorized,
		Message:    "Unauthorized",
	}

	// ErrAccessDenied is returned when the caller may not act on a resource.
	ErrAccessDenied = &APIError{
		StatusCode: http.StatusForbidden,
		Kind:       httpx.KindAccessDenied,
		Message:    "Access denied",
	}

	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Kind:       httpx.KindNotFound,
		Message:    "Not found",
	}

	// ErrEmailTaken is returned by register for an existing email.
	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Kind:       httpx.KindConflict,
		Message:    "Email already exists",
	}

	// ErrServerError hides unexpected failures from clients.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Kind:       httpx.KindServerError,
		Message:    "Server error",
	}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp APIError
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Kind != "" {
		errResp.StatusCode = resp.StatusCode
		return &errResp
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       http.StatusText(resp.StatusCode),
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
