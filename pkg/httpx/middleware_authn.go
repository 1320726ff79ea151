package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// ParseBearer extracts the token from an Authorization header value. The
// header must be exactly "Bearer <token>".
func ParseBearer(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// AuthnMiddleware verifies the access token on protected routes and attaches
// the user id and roles to the request context. The store is not consulted:
// an access token is trusted until it expires.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := ParseBearer(r.Header.Get("Authorization"))
			if !ok {
				writeBearerError(w, "invalid_request", "Missing or malformed Authorization header")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				desc := "Invalid or expired token"
				if errors.Is(err, jwtx.ErrExpired) {
					desc = "Token expired"
				}
				slogx.FromContext(ctx).Debug("access token rejected", "err", err)
				writeBearerError(w, "invalid_token", desc)
				return
			}

			ctx = ContextWithAuth(ctx, claims)
			ctx = slogx.WithUserID(ctx, claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeBearerError sets an RFC 6750 challenge and writes the JSON error body.
func writeBearerError(w http.ResponseWriter, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, KindUnauthorized, desc)
}
