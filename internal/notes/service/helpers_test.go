package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var (
	testAccessSecret  = []byte("test-access-secret-0123456789abcdef")
	testRefreshSecret = []byte("test-refresh-secret-0123456789abcdef")
)

type fixture struct {
	store  *sqlite.Store
	tokens *TokenService
	auth   *AuthService
	notes  *NotesService
	m      *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "notes.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	m := metrics.New()
	tokens, err := NewTokenService(TokenConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		Issuer:        "notes-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}, st, m)
	require.NoError(t, err)

	return &fixture{
		store:  st,
		tokens: tokens,
		auth:   &AuthService{Store: st, Tokens: tokens, Metrics: m, AdminEmails: []string{"admin@x.com"}},
		notes:  &NotesService{Store: st},
		m:      m,
	}
}

func (f *fixture) register(t *testing.T, email string) domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), email, "pw-"+email)
	require.NoError(t, err)
	return u
}

func (f *fixture) login(t *testing.T, email string) domain.TokenPair {
	t.Helper()
	pair, err := f.auth.Login(context.Background(), email, "pw-"+email)
	require.NoError(t, err)
	return pair
}

func (f *fixture) user(t *testing.T, id string) domain.User {
	t.Helper()
	u, err := f.store.Users().GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}
