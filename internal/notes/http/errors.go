package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// writeServiceError maps a service error onto the API error body. Anything
// unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var apiErr *notesdk.APIError

	switch {
	case errors.Is(err, service.ErrValidation):
		apiErr = notesdk.ErrValidation.WithMessage(service.Message(err, notesdk.ErrValidation.Message))
	case errors.Is(err, service.ErrEmailTaken):
		apiErr = notesdk.ErrEmailTaken
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = notesdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrInvalidRefresh):
		apiErr = notesdk.ErrInvalidRefreshToken
	case errors.Is(err, service.ErrInvalidNoteID):
		apiErr = notesdk.ErrInvalidID.WithMessage(service.Message(err, notesdk.ErrInvalidID.Message))
	case errors.Is(err, service.ErrNoteNotFound):
		apiErr = notesdk.ErrNotFound.WithMessage(service.Message(err, notesdk.ErrNotFound.Message))
	case errors.Is(err, service.ErrAccessDenied):
		apiErr = notesdk.ErrAccessDenied.WithMessage(service.Message(err, notesdk.ErrAccessDenied.Message))
	default:
		slogx.FromContext(r.Context()).Error(op+" failed", "err", err)
		apiErr = notesdk.ErrServerError
	}

	apiErr.WriteError(w)
}
