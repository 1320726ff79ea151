package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("guard-secret-guard-secret-012345")

func signAccess(t *testing.T, secret []byte, c jwtx.Claims) string {
	t.Helper()
	s, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	tok, err := s.Sign(c)
	require.NoError(t, err)
	return tok
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer  abc", "", false},
		{"Bearer abc def", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := httpx.ParseBearer(tt.header)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.token, token)
		})
	}
}

func TestAuthnMiddleware(t *testing.T) {
	verifier := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Type: jwtx.TypeAccess})

	var gotID string
	var gotRoles []string
	protected := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = httpx.UserIDFromContext(r.Context())
		gotRoles = httpx.RolesFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), httpx.AuthnMiddleware(verifier))

	now := time.Now()
	valid := signAccess(t, testSecret, jwtx.NewAccessClaims("u1", []string{"USER", "ADMIN"}, time.Minute, "", now))
	expired := signAccess(t, testSecret, jwtx.NewAccessClaims("u1", nil, -time.Minute, "", now))
	refresh := signAccess(t, testSecret, jwtx.NewRefreshClaims("u1", time.Minute, "", now))
	foreign := signAccess(t, []byte("some-other-secret-some-other-sec"), jwtx.NewAccessClaims("u1", nil, time.Minute, "", now))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "u1", gotID)
		require.Equal(t, []string{"USER", "ADMIN"}, gotRoles)
	})

	rejected := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token " + valid},
		{"expired", "Bearer " + expired},
		{"refresh token", "Bearer " + refresh},
		{"other secret", "Bearer " + foreign},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

			var body httpx.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.False(t, body.Success)
			require.Equal(t, httpx.KindUnauthorized, body.Error)
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
