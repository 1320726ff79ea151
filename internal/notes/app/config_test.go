package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"15m", 15 * time.Minute, true},
		{"1h30m", 90 * time.Minute, true},
		{"7d", 7 * 24 * time.Hour, true},
		{"30", 30 * time.Minute, true},
		{"soon", 0, false},
		{"xd", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDuration(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"ENV", "PORT", "ACCESS_TOKEN_EXPIRES", "REFRESH_TOKEN_EXPIRES", "ADMIN_EMAILS", "MAX_REFRESH_TOKENS"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 10, cfg.MaxRefreshTokens)
	require.Empty(t, cfg.AdminEmails)
	require.False(t, cfg.SecureCookies())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_EXPIRES", "30d")
	t.Setenv("ADMIN_EMAILS", " a@x.com, ,B@x.com ")
	t.Setenv("GITHUB_CALLBACK_URL", "https://notes.example/auth/github/callback")
	t.Setenv("PORT", "not-a-port")

	cfg := LoadConfig()
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, []string{"a@x.com", "B@x.com"}, cfg.AdminEmails)
	require.True(t, cfg.SecureCookies())
	require.Equal(t, 8080, cfg.Port)
}

func TestValidate(t *testing.T) {
	good := strings.Repeat("a", 32)
	other := strings.Repeat("b", 32)

	base := func() Config {
		return Config{Env: "prod", JWTSecret: good, RefreshTokenSecret: other,
			AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour, MaxRefreshTokens: 10}
	}

	require.NoError(t, base().Validate())

	c := base()
	c.RefreshTokenSecret = ""
	require.ErrorContains(t, c.Validate(), "REFRESH_TOKEN_SECRET is required")

	c = base()
	c.RefreshTokenSecret = good
	require.ErrorContains(t, c.Validate(), "must differ")

	c = base()
	c.JWTSecret = "short"
	require.ErrorContains(t, c.Validate(), "at least 32 bytes")

	c = base()
	c.Env = "dev"
	c.JWTSecret, c.RefreshTokenSecret = "", ""
	require.NoError(t, c.Validate())
}
