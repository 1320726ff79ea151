package http

import (
	"net/http"

	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
)

// RevokeHandler serves POST /api/v1/auth/revoke. Unknown, invalid and
// already revoked tokens all get the same 200 so the endpoint cannot be used
// to probe tokens.
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Revoke
//	@Description	Removes a refresh token from its owner's list. Always succeeds for a non-empty token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.RefreshRequest	true	"refreshToken (refresh_token accepted)"
//	@Success		200		{object}	notesdk.MessageResponse	"success, message"
//	@Failure		400		{object}	httpx.ErrorBody			"Refresh token required"
//	@Failure		429		{object}	httpx.ErrorBody			"Too Many Requests"
//	@Router			/api/v1/auth/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req notesdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	if err := h.TokenService.Revoke(r.Context(), req.Token()); err != nil {
		writeServiceError(w, r, err, "revoke")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.MessageResponse{
		Success: true,
		Message: "Refresh token revoked (if valid)",
	})
}
