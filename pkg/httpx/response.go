package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// Error kinds carried in the "error" field of every error response.
const (
	KindValidation      = "Validation Error"
	KindInvalidID       = "Invalid ID"
	KindBadRequest      = "Bad Request"
	KindUnauthorized    = "Unauthorized"
	KindAccessDenied    = "Access Denied"
	KindNotFound        = "Not Found"
	KindConflict        = "Conflict"
	KindTooManyRequests = "Too Many Requests"
	KindServerError     = "Server Error"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrInvalidJSON is returned by DecodeJSON for bodies that are not a single JSON object.
var ErrInvalidJSON = errors.New("httpx: invalid json body")

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {success:false, error:kind, message} with the given status.
func WriteError(w http.ResponseWriter, code int, kind, message string) {
	WriteJSON(w, code, ErrorBody{Success: false, Error: kind, Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON decodes a single JSON object from the request body into v.
// Bodies over MaxBodyBytes, trailing data and malformed JSON all yield
// ErrInvalidJSON. An empty body decodes to the zero value.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return nil
}
