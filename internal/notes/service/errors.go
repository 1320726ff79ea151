package service

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
)

var (
	ErrValidation         = errors.New("validation_error")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrProviderFailure    = errors.New("provider_failure")

	ErrInvalidNoteID = errors.New("invalid_note_id")
	ErrNoteNotFound  = errors.New("note_not_found")
	ErrAccessDenied  = errors.New("access_denied")

	// errContention is returned when a refresh token list write keeps losing
	// to concurrent writers.
	errContention = errors.New("refresh token list contention")
)

// Error pairs one of the sentinels above with the message shown to clients.
// errors.Is matches the sentinel.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string { return e.Err.Error() + ": " + e.Message }
func (e *Error) Unwrap() error { return e.Err }

func newError(kind error, msg string) *Error {
	return &Error{Err: kind, Message: msg}
}

// Message returns the client-facing message carried by err, or fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// NormalizeEmail lowercases and trims an email for lookups and inserts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// rolesForEmail grants ADMIN to configured addresses on top of the defaults.
func rolesForEmail(admins []string, email string) []string {
	roles := domain.DefaultRoles()
	for _, a := range admins {
		if NormalizeEmail(a) == email {
			return append(roles, domain.RoleAdmin)
		}
	}
	return roles
}
