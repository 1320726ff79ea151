package notesdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret-test-secret-test-sec"))
	require.NoError(t, err)
	return tok
}

func TestClient_ErrorResponses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			ErrInvalidCredentials.WriteError(w)
		case "/api/v1/auth/register":
			ErrEmailTaken.WriteError(w)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewSDKClient(srv.URL)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@b.c", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Invalid credentials", apiErr.Message)

	_, err = c.Register(ctx, "a@b.c", "pw")
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = c.GetLiveness(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAPIError_Is(t *testing.T) {
	t.Parallel()

	custom := ErrUnauthorized.WithMessage("Token expired")
	require.ErrorIs(t, custom, ErrUnauthorized)
	require.ErrorIs(t, custom, ErrInvalidRefreshToken, "same status and kind")
	require.NotErrorIs(t, custom, ErrAccessDenied)
}

func TestSession_AutoRefresh(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	var currentAccess atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			var req RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "refresh-1", req.Token())
			refreshes.Add(1)

			access := signedToken(t, time.Now().Add(15*time.Minute))
			currentAccess.Store(access)
			httpx.WriteJSON(w, http.StatusOK, TokenResponse{
				Success: true, AccessToken: access, RefreshToken: "refresh-2", TokenType: "Bearer",
			})
		case "/api/v1/notes/my":
			want, _ := currentAccess.Load().(string)
			if r.Header.Get("Authorization") != "Bearer "+want {
				ErrUnauthorized.WriteError(w)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, NoteListResponse{
				Success:    true,
				Notes:      []Note{},
				Pagination: Pagination{Page: 1, Limit: 10},
			})
		default:
			ErrNotFound.WriteError(w)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewSDKClient(srv.URL)

	// An access token inside the refresh leeway triggers a rotation first.
	s := c.NewSession(&TokenResponse{
		AccessToken:  signedToken(t, time.Now().Add(10*time.Second)),
		RefreshToken: "refresh-1",
	})

	out, err := s.MyNotes(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Pagination.Page)
	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, "refresh-2", s.RefreshToken())

	// The rotated token is fresh; no second refresh.
	_, err = s.MyNotes(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Equal(t, int32(1), refreshes.Load())
}

func TestSession_ListQuery(t *testing.T) {
	t.Parallel()

	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		httpx.WriteJSON(w, http.StatusOK, NoteListResponse{Success: true})
	}))
	t.Cleanup(srv.Close)

	c := NewSDKClient(srv.URL)
	s := c.NewSession(&TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900})

	_, err := s.ListNotes(context.Background(), ListOptions{Page: 2, Limit: 5, Search: "go", Tags: []string{"x", "y"}})
	require.NoError(t, err)
	require.Equal(t, "2", got.Get("page"))
	require.Equal(t, "5", got.Get("limit"))
	require.Equal(t, "go", got.Get("search"))
	require.Equal(t, "x,y", got.Get("tags"))
}

func TestParseSuccessRedirect(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		user, _ := json.Marshal(GitHubUserData{ID: 42, Login: "octo", Email: "octo@example.com"})
		q := url.Values{
			"access_token":  {"a"},
			"refresh_token": {"r"},
			"user_data":     {string(user)},
		}
		tokens, profile, err := ParseSuccessRedirect("http://localhost:3000/auth/success?" + q.Encode())
		require.NoError(t, err)
		require.Equal(t, "a", tokens.AccessToken)
		require.Equal(t, "r", tokens.RefreshToken)
		require.Equal(t, int64(42), profile.ID)
		require.Equal(t, "octo", profile.Login)
	})

	t.Run("error page", func(t *testing.T) {
		_, _, err := ParseSuccessRedirect("http://localhost:3000/?error=github_oauth_failed")
		require.ErrorIs(t, err, ErrOAuthFailed)
	})

	t.Run("missing tokens", func(t *testing.T) {
		_, _, err := ParseSuccessRedirect("http://localhost:3000/auth/success")
		require.Error(t, err)
	})
}
