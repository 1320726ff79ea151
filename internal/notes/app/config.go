package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	DatabaseFile         string        // Path to SQLite database file (default: ./notes.db)
	PepperFile           string        // Path to the password pepper file (default: ./pepper)

	JWTSecret          string        // Access token HMAC secret. Required in prod.
	RefreshTokenSecret string        // Refresh token HMAC secret. Required in prod, must differ from JWTSecret.
	Issuer             string        // Issuer claim for both token classes (default: notes-service)
	AccessTokenTTL     time.Duration // Access token lifetime (default: 15m)
	RefreshTokenTTL    time.Duration // Refresh token lifetime (default: 7d)
	MaxRefreshTokens   int           // Refresh tokens held per user (default: 10)
	AdminEmails        []string      // Accounts created with these emails get the ADMIN role

	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string        // default: http://localhost:8080/auth/github/callback
	GitHubAuthURL      string        // Optional override, e.g. GitHub Enterprise
	GitHubTokenURL     string        // Optional override
	GitHubAPIURL       string        // Optional override
	GitHubTimeout      time.Duration // Bound on every GitHub call (default: 10s)
	FrontendURL        string        // Where the browser lands after GitHub sign-in (default: http://localhost:3000)

	RateLimits httpx.RateLimitProfiles
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "notes.db"),
		PepperFile:           getEnvOrDefault("PEPPER_FILE", "pepper"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		Issuer:             getEnvOrDefault("JWT_ISSUER", "notes-service"),
		AccessTokenTTL:     getEnvDurationOrDefault("ACCESS_TOKEN_EXPIRES", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:    getEnvDurationOrDefault("REFRESH_TOKEN_EXPIRES", jwtx.DefaultRefreshTokenTTL),
		MaxRefreshTokens:   getEnvIntOrDefault("MAX_REFRESH_TOKENS", 10),
		AdminEmails:        splitList(os.Getenv("ADMIN_EMAILS")),

		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubCallbackURL:  getEnvOrDefault("GITHUB_CALLBACK_URL", "http://localhost:8080/auth/github/callback"),
		GitHubAuthURL:      os.Getenv("GITHUB_AUTH_URL"),
		GitHubTokenURL:     os.Getenv("GITHUB_TOKEN_URL"),
		GitHubAPIURL:       os.Getenv("GITHUB_API_URL"),
		GitHubTimeout:      getEnvDurationOrDefault("GITHUB_TIMEOUT", 10*time.Second),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),

		RateLimits: httpx.RateLimitProfilesFromEnv(),
	}
}

// Validate rejects configurations the service must not start with. Outside
// prod, missing secrets are allowed and generated at start.
func (c Config) Validate() error {
	var errs []error

	if c.Env == "prod" {
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required in prod"))
		}
		if c.RefreshTokenSecret == "" {
			errs = append(errs, errors.New("REFRESH_TOKEN_SECRET is required in prod"))
		}
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.RefreshTokenSecret != "" && len(c.RefreshTokenSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("REFRESH_TOKEN_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.JWTSecret != "" && c.JWTSecret == c.RefreshTokenSecret {
		errs = append(errs, errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must differ"))
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}
	if c.MaxRefreshTokens < 1 {
		errs = append(errs, errors.New("MAX_REFRESH_TOKENS must be at least 1"))
	}

	return errors.Join(errs...)
}

// SecureCookies reports whether cookies should carry the Secure flag, which
// is the case whenever the callback is served over https.
func (c Config) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(c.GitHubCallbackURL), "https://")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, ok := parseDuration(value); ok {
		return d
	}
	return defaultValue
}

// parseDuration accepts Go durations ("15m", "1h30m"), whole days ("7d") and
// bare integers, read as minutes.
func parseDuration(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)

	if duration, err := time.ParseDuration(value); err == nil {
		return duration, true
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour, true
		}
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute, true
	}

	return 0, false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
