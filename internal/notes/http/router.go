package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/aussiebroadwan/notes/pkg/slogx"

	_ "github.com/aussiebroadwan/notes/api/notes" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics
	limits       httpx.RateLimitProfiles

	store        store.Store
	AuthService  *service.AuthService
	TokenService *service.TokenService
	OAuthService *service.OAuthService
	NotesService *service.NotesService

	// FrontendURL receives the browser at the end of a GitHub sign-in.
	FrontendURL string

	// SecureCookies marks the oauth_state cookie Secure.
	SecureCookies bool
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Metrics,
	limits httpx.RateLimitProfiles,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
		limits:       limits,
	}

	// The metrics middleware reads the matched pattern, so it has to see the
	// request the mux routes, which is the one slogx passes on.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Middleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGitHub()
	r.registerNotes()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Notes API
//	@version		0.1.0
//	@description	Note taking API with email/password and GitHub sign-in.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs signed with separate secrets. Refresh tokens are single use.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/notes
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential checks - strict rate limit by IP
	r.Mux.Handle("POST /api/v1/auth/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	// Login is additionally keyed by IP + email to slow guessing against one account
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(r.limits.Strict),
			httpx.RateLimitByIPAndJSONField(r.limits.Strict, "email"),
		),
	)

	// Token rotation and revocation - moderate rate limit by IP
	r.Mux.Handle("POST /api/v1/auth/refresh",
		httpx.Chain(&RefreshHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(r.limits.Moderate),
		),
	)
	r.Mux.Handle("POST /api/v1/auth/revoke",
		httpx.Chain(&RevokeHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(r.limits.Moderate),
		),
	)
}

func (r *Router) registerGitHub() {
	h := &GitHubHandler{
		OAuthService:  r.OAuthService,
		Metrics:       r.metrics,
		FrontendURL:   r.FrontendURL,
		SecureCookies: r.SecureCookies,
	}

	begin := httpx.Chain(http.HandlerFunc(h.HandleBegin),
		httpx.RateLimitByIP(r.limits.Lenient),
	)
	callback := httpx.Chain(http.HandlerFunc(h.HandleCallback),
		httpx.RateLimitByIP(r.limits.Lenient),
	)

	// Sign-in lives at the root; the /api/v1 forms are aliases.
	r.Mux.Handle("GET /auth/github", begin)
	r.Mux.Handle("GET /auth/github/callback", callback)
	r.Mux.Handle("GET /api/v1/auth/github", begin)
	r.Mux.Handle("GET /api/v1/auth/github/callback", callback)
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NotesService: r.NotesService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.limits.Lenient),
		)
	}

	r.Mux.Handle("GET /api/v1/notes", secured(h.HandleList))
	r.Mux.Handle("GET /api/v1/notes/my", secured(h.HandleMine))
	r.Mux.Handle("GET /api/v1/notes/{id}", secured(h.HandleGet))
	r.Mux.Handle("POST /api/v1/notes", secured(h.HandleCreate))
	r.Mux.Handle("PUT /api/v1/notes/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/v1/notes/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Probes and scrapes are not rate limited; monitoring polls often.
	r.Mux.Handle("GET /health", HealthHandler())
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
