package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

const (
	// StateCookieName holds the OAuth2 state between the redirect and the callback.
	StateCookieName = "oauth_state"

	stateCookieMaxAge = 10 * time.Minute
	stateBytes        = 16

	// oauthFailedError is the only detail a failed sign-in exposes to the browser.
	oauthFailedError = "github_oauth_failed"
)

// GitHubHandler serves the GitHub sign-in redirect and callback.
type GitHubHandler struct {
	OAuthService *service.OAuthService
	Metrics      *metrics.Metrics

	// FrontendURL is where the browser lands after the callback.
	FrontendURL string

	// SecureCookies marks the state cookie Secure.
	SecureCookies bool
}

// HandleBegin godoc
//
//	@Summary		Begin GitHub sign-in
//	@Description	Sets a random state in the oauth_state cookie and redirects to GitHub's authorize page.
//	@Tags			OAuth
//	@Success		302	"Redirect to GitHub"
//	@Failure		500	{object}	httpx.ErrorBody	"Server Error"
//	@Header			302	{string}	Set-Cookie		"oauth_state"
//	@Router			/auth/github [get].
func (h *GitHubHandler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	state, err := cryptox.GenerateHex(stateBytes)
	if err != nil {
		slogx.FromContext(r.Context()).Error("generate oauth state failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	http.SetCookie(w, h.stateCookie(state, int(stateCookieMaxAge.Seconds())))
	http.Redirect(w, r, h.OAuthService.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback godoc
//
//	@Summary		GitHub sign-in callback
//	@Description	Checks the state against the oauth_state cookie, completes the code exchange and redirects to the front-end.
//	@Description	On success the redirect carries access_token, refresh_token and user_data (JSON profile) as query parameters.
//	@Description	Any provider failure redirects to the front-end with error=github_oauth_failed.
//	@Tags			OAuth
//	@Param			code	query	string	false	"Authorization code"
//	@Param			state	query	string	true	"State echoed by GitHub"
//	@Param			error	query	string	false	"Error reported by GitHub"
//	@Success		302		"Redirect to FRONTEND_URL/auth/success or FRONTEND_URL/?error=github_oauth_failed"
//	@Failure		400		{object}	httpx.ErrorBody	"Invalid state"
//	@Router			/auth/github/callback [get].
func (h *GitHubHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	// The state is single use whatever happens next.
	cookie, cookieErr := r.Cookie(StateCookieName)
	http.SetCookie(w, h.stateCookie("", -1))

	state := q.Get("state")
	if cookieErr != nil || cookie.Value == "" || state == "" ||
		subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		log.Warn("oauth state mismatch", "has_cookie", cookieErr == nil)
		h.Metrics.OAuthCallbacks.WithLabelValues(metrics.OutcomeStateMismatch).Inc()
		notesdk.ErrInvalidState.WriteError(w)
		return
	}

	if providerErr := q.Get("error"); providerErr != "" {
		log.Warn("github returned an error", "error", providerErr, "description", q.Get("error_description"))
		h.fail(w, r)
		return
	}

	login, err := h.OAuthService.Complete(ctx, q.Get("code"))
	if err != nil {
		log.Error("github sign-in failed", "err", err)
		h.fail(w, r)
		return
	}

	userData, err := json.Marshal(toUserData(login.Profile))
	if err != nil {
		log.Error("encode user data failed", "err", err)
		h.fail(w, r)
		return
	}

	v := url.Values{}
	v.Set("access_token", login.Tokens.AccessToken)
	v.Set("refresh_token", login.Tokens.RefreshToken)
	v.Set("user_data", string(userData))

	h.Metrics.OAuthCallbacks.WithLabelValues(metrics.OutcomeSuccess).Inc()
	http.Redirect(w, r, h.frontend("/auth/success")+"?"+v.Encode(), http.StatusFound)
}

func (h *GitHubHandler) fail(w http.ResponseWriter, r *http.Request) {
	h.Metrics.OAuthCallbacks.WithLabelValues(metrics.OutcomeProviderFailed).Inc()
	http.Redirect(w, r, h.frontend("/")+"?error="+oauthFailedError, http.StatusFound)
}

func (h *GitHubHandler) frontend(path string) string {
	return strings.TrimRight(h.FrontendURL, "/") + path
}

func (h *GitHubHandler) stateCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     StateCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func toUserData(p domain.GitHubProfile) notesdk.GitHubUserData {
	return notesdk.GitHubUserData{
		ID:          p.ID,
		Name:        p.Name,
		Login:       p.Login,
		Email:       p.Email,
		Location:    p.Location,
		Company:     p.Company,
		Blog:        p.Blog,
		Bio:         p.Bio,
		PublicRepos: p.PublicRepos,
		Followers:   p.Followers,
		Following:   p.Following,
		AvatarURL:   p.AvatarURL,
		HTMLURL:     p.HTMLURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
