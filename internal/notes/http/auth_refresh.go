package http

import (
	"net/http"

	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
)

// RefreshHandler serves POST /api/v1/auth/refresh. The presented refresh
// token is consumed; presenting it again fails.
type RefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Refresh
//	@Description	Rotates a refresh token. The old token stops working and a new pair is returned.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.RefreshRequest	true	"refreshToken (refresh_token accepted)"
//	@Success		200		{object}	notesdk.TokenResponse	"access_token, refresh_token, token_type"
//	@Failure		400		{object}	httpx.ErrorBody			"Refresh token required"
//	@Failure		401		{object}	httpx.ErrorBody			"Invalid refresh token"
//	@Failure		429		{object}	httpx.ErrorBody			"Too Many Requests"
//	@Failure		500		{object}	httpx.ErrorBody			"Server Error"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/api/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req notesdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	pair, err := h.TokenService.Refresh(r.Context(), req.Token())
	if err != nil {
		writeServiceError(w, r, err, "refresh")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.TokenResponse{
		Success:      true,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}
