package http

import (
	"net/http"

	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
)

// LoginHandler serves POST /api/v1/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Exchanges email and password for an access/refresh token pair.
//	@Description	Unknown emails and wrong passwords return the same 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.CredentialsRequest	true	"email, password"
//	@Success		200		{object}	notesdk.TokenResponse		"access_token, refresh_token, token_type, expires_in"
//	@Failure		400		{object}	httpx.ErrorBody				"Validation Error"
//	@Failure		401		{object}	httpx.ErrorBody				"Invalid credentials"
//	@Failure		429		{object}	httpx.ErrorBody				"Too Many Requests"
//	@Failure		500		{object}	httpx.ErrorBody				"Server Error"
//	@Header			200		{string}	Cache-Control				"no-store"
//	@Router			/api/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req notesdk.CredentialsRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "login")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.TokenResponse{
		Success:      true,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	})
}
