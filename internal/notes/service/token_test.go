package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_RejectsSharedSecret(t *testing.T) {
	_, err := NewTokenService(TokenConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testAccessSecret,
	}, nil, metrics.New())
	require.Error(t, err)

	_, err = NewTokenService(TokenConfig{
		AccessSecret:  []byte("short"),
		RefreshSecret: testRefreshSecret,
	}, nil, metrics.New())
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestRefresh_IsSingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "a@x.com")
	pair := f.login(t, "a@x.com")

	rotated, err := f.tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	claims, err := f.tokens.AccessVerifier.Verify(rotated.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Identity())

	// Replaying the old token is reuse.
	_, err = f.tokens.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
	require.Equal(t, 1.0, testutil.ToFloat64(f.m.RefreshAttempts.WithLabelValues(metrics.OutcomeReuse)))

	// The rotated token stays usable.
	_, err = f.tokens.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)

	refs := f.user(t, u.ID).RefreshTokens
	require.Len(t, refs, 1)
}

func TestRefresh_RejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com")
	pair := f.login(t, "a@x.com")

	_, err := f.tokens.Refresh(ctx, "  ")
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "Refresh token required", Message(err, ""))

	_, err = f.tokens.Refresh(ctx, "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// An access token is signed with the other secret.
	_, err = f.tokens.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// A well-formed refresh token for a user that does not exist.
	orphan, _, err := f.tokens.SignRefresh("00000000-0000-0000-0000-000000000000", time.Now())
	require.NoError(t, err)
	_, err = f.tokens.Refresh(ctx, orphan)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefresh_ConcurrentUseHasOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com")
	pair := f.login(t, "a@x.com")

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.tokens.Refresh(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, ErrInvalidRefresh)
	}
	require.Equal(t, 1, successes)
}

func TestRevoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "a@x.com")
	pair := f.login(t, "a@x.com")

	require.NoError(t, f.tokens.Revoke(ctx, pair.RefreshToken))
	require.Empty(t, f.user(t, u.ID).RefreshTokens)

	_, err := f.tokens.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// Revoking again, or revoking garbage, is not an error.
	require.NoError(t, f.tokens.Revoke(ctx, pair.RefreshToken))
	require.NoError(t, f.tokens.Revoke(ctx, "garbage"))

	err = f.tokens.Revoke(ctx, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestIssue_CapsListAndEvictsOldest(t *testing.T) {
	f := newFixture(t)
	f.tokens.MaxRefreshTokens = 3
	ctx := context.Background()
	u := f.register(t, "a@x.com")

	first := f.login(t, "a@x.com")
	var last string
	for i := 0; i < 3; i++ {
		last = f.login(t, "a@x.com").RefreshToken
	}

	refs := f.user(t, u.ID).RefreshTokens
	require.Len(t, refs, 3)
	require.Equal(t, cryptox.FingerprintToken(last), refs[2].Fingerprint)

	_, err := f.tokens.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = f.tokens.Refresh(ctx, last)
	require.NoError(t, err)
}

func TestPruneExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "a@x.com")

	// Issue one pair in the past so it is already expired today.
	f.tokens.Now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	f.login(t, "a@x.com")
	f.tokens.Now = time.Now
	f.login(t, "a@x.com")
	require.Len(t, f.user(t, u.ID).RefreshTokens, 1, "writes prune expired entries")

	f.tokens.Now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	f.login(t, "a@x.com")
	f.tokens.Now = time.Now

	removed, err := f.tokens.PruneExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Len(t, f.user(t, u.ID).RefreshTokens, 1)

	removed, err = f.tokens.PruneExpired(ctx)
	require.NoError(t, err)
	require.Zero(t, removed)
}
