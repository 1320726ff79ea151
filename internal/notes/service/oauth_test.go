package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/github"
	"github.com/aussiebroadwan/notes/internal/notes/github/githubtest"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/stretchr/testify/require"
)

func (f *fixture) oauth(t *testing.T, gh *githubtest.Server) *OAuthService {
	t.Helper()
	return &OAuthService{
		Store:    f.store,
		Tokens:   f.tokens,
		Provider: github.New(gh.Config()),
		Metrics:  f.m,
	}
}

func TestOAuthComplete_ReusesExistingUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "octo@x.com")

	gh := githubtest.NewServer(t, domain.GitHubProfile{ID: 42, Login: "octo", Email: "Octo@x.com"}, nil)
	login, err := f.oauth(t, gh).Complete(ctx, githubtest.ValidCode)
	require.NoError(t, err)

	require.Equal(t, u.ID, login.User.ID)
	require.Equal(t, "octo", login.Profile.Login)

	claims, err := f.tokens.AccessVerifier.Verify(login.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Identity())
	require.Zero(t, gh.Hits("/user/emails"))
}

func TestOAuthComplete_CreatesUserFromPrimaryEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gh := githubtest.NewServer(t, domain.GitHubProfile{ID: 7, Login: "private"}, []domain.GitHubEmail{
		{Email: "secondary@x.com", Verified: true},
		{Email: "primary@x.com", Primary: true, Verified: true},
	})
	svc := f.oauth(t, gh)

	login, err := svc.Complete(ctx, githubtest.ValidCode)
	require.NoError(t, err)
	require.Equal(t, "primary@x.com", login.User.Email)
	require.Equal(t, "primary@x.com", login.Profile.Email)
	require.Equal(t, 1, gh.Hits("/user/emails"))

	// A second sign-in lands on the same account.
	again, err := svc.Complete(ctx, githubtest.ValidCode)
	require.NoError(t, err)
	require.Equal(t, login.User.ID, again.User.ID)

	// The generated password is unknown, so password login fails.
	_, err = f.auth.Login(ctx, "primary@x.com", "guess")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOAuthComplete_AdminEmail(t *testing.T) {
	f := newFixture(t)
	gh := githubtest.NewServer(t, domain.GitHubProfile{ID: 1, Login: "boss", Email: "admin@x.com"}, nil)
	svc := f.oauth(t, gh)
	svc.AdminEmails = []string{"ADMIN@x.com"}

	login, err := svc.Complete(context.Background(), githubtest.ValidCode)
	require.NoError(t, err)
	require.True(t, domain.HasRole(login.User.Roles, domain.RoleAdmin))
}

func TestOAuthComplete_ProviderFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("bad code", func(t *testing.T) {
		gh := githubtest.NewServer(t, domain.GitHubProfile{ID: 1, Email: "a@x.com"}, nil)
		_, err := f.oauth(t, gh).Complete(ctx, "wrong-code")
		require.ErrorIs(t, err, ErrProviderFailure)
		require.Zero(t, gh.Hits("/user"))
	})

	t.Run("missing code", func(t *testing.T) {
		gh := githubtest.NewServer(t, domain.GitHubProfile{ID: 1, Email: "a@x.com"}, nil)
		_, err := f.oauth(t, gh).Complete(ctx, "")
		require.ErrorIs(t, err, ErrProviderFailure)
		require.Zero(t, gh.TotalHits())
	})

	t.Run("no usable email", func(t *testing.T) {
		gh := githubtest.NewServer(t, domain.GitHubProfile{ID: 1}, nil)
		_, err := f.oauth(t, gh).Complete(ctx, githubtest.ValidCode)
		require.ErrorIs(t, err, ErrProviderFailure)
	})
}

func TestOAuthComplete_ProviderTimeout(t *testing.T) {
	f := newFixture(t)
	gh := githubtest.NewServer(t, domain.GitHubProfile{ID: 9, Login: "slow", Email: "slow@x.com"}, nil)
	gh.SetDelay(2 * time.Second)

	cfg := gh.Config()
	cfg.Timeout = 100 * time.Millisecond
	svc := f.oauth(t, gh)
	svc.Provider = github.New(cfg)

	start := time.Now()
	_, err := svc.Complete(context.Background(), githubtest.ValidCode)
	require.ErrorIs(t, err, ErrProviderFailure)
	require.Less(t, time.Since(start), time.Second)

	_, err = f.store.Users().GetUserByEmail(context.Background(), "slow@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
