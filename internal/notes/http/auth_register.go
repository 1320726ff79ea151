package http

import (
	"net/http"

	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
)

// RegisterHandler serves POST /api/v1/auth/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Creates an email/password account with the USER role. Does not log the user in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.CredentialsRequest	true	"email, password"
//	@Success		201		{object}	notesdk.RegisterResponse	"success, message, userId"
//	@Failure		400		{object}	httpx.ErrorBody				"Validation Error"
//	@Failure		409		{object}	httpx.ErrorBody				"Email already exists"
//	@Failure		429		{object}	httpx.ErrorBody				"Too Many Requests"
//	@Failure		500		{object}	httpx.ErrorBody				"Server Error"
//	@Router			/api/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req notesdk.CredentialsRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "register")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, notesdk.RegisterResponse{
		Success: true,
		Message: "User registered",
		UserID:  user.ID,
	})
}
