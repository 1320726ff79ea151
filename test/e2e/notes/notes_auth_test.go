//go:build e2e

package notes_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginRefreshRevoke walks the whole token lifecycle:
// 1. Register and log in
// 2. Refresh and check rotation
// 3. Replay the old refresh token (rejected)
// 4. Revoke the new one, then refresh with it (rejected)
func TestRegisterLoginRefreshRevoke(t *testing.T) {
	baseURL, cleanup := setupNotesContainer(t)
	defer cleanup()

	client := notesdk.NewSDKClient(baseURL)
	ctx := t.Context()

	_, err := client.Register(ctx, "user@notes.test", userPassword)
	require.NoError(t, err)

	login, err := client.PasswordLogin(ctx, "user@notes.test", userPassword)
	require.NoError(t, err)
	assertTokenResponse(t, login)
	require.Equal(t, 900, login.ExpiresIn)

	rotated, err := client.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assertTokenResponse(t, rotated)
	require.NotEqual(t, login.RefreshToken, rotated.RefreshToken, "Refresh token should be rotated")

	_, err = client.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, notesdk.ErrInvalidRefreshToken, "Replayed refresh token must fail")

	require.NoError(t, client.Revoke(ctx, rotated.RefreshToken))
	require.NoError(t, client.Revoke(ctx, rotated.RefreshToken), "Revoke is idempotent")

	_, err = client.Refresh(ctx, rotated.RefreshToken)
	require.ErrorIs(t, err, notesdk.ErrInvalidRefreshToken)
}

// TestLoginDoesNotRevealAccounts checks unknown emails and wrong passwords
// are indistinguishable.
func TestLoginDoesNotRevealAccounts(t *testing.T) {
	baseURL, cleanup := setupNotesContainer(t)
	defer cleanup()

	client := notesdk.NewSDKClient(baseURL)
	ctx := t.Context()

	_, err := client.Register(ctx, "user@notes.test", userPassword)
	require.NoError(t, err)

	_, errUnknown := client.PasswordLogin(ctx, "nobody@notes.test", userPassword)
	_, errWrong := client.PasswordLogin(ctx, "user@notes.test", "wrong")

	require.ErrorIs(t, errUnknown, notesdk.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, notesdk.ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

// TestGitHubBeginRedirects checks the sign-in start sets the state cookie
// and redirects to GitHub. The callback needs a real GitHub and is covered
// by the package tests.
func TestGitHubBeginRedirects(t *testing.T) {
	baseURL, cleanup := setupNotesContainer(t)
	defer cleanup()

	client := notesdk.NewSDKClient(baseURL)

	resp, err := client.HTTPClient.Get(client.GitHubLoginURL())
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Location"), "https://github.com/login/oauth/authorize"))

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == "oauth_state" && c.Value != "" {
			found = true
		}
	}
	require.True(t, found, "oauth_state cookie should be set")
}

// TestGitHubCallbackRejectsForgedState checks a callback without the cookie
// is refused before GitHub is contacted.
func TestGitHubCallbackRejectsForgedState(t *testing.T) {
	baseURL, cleanup := setupNotesContainer(t)
	defer cleanup()

	client := notesdk.NewSDKClient(baseURL)

	resp, err := client.HTTPClient.Get(baseURL + "/auth/github/callback?code=x&state=forged")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
