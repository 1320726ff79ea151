package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/github"
	httpapi "github.com/aussiebroadwan/notes/internal/notes/http"
	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the notes service with all its dependencies
type Application struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	db store.Store

	tokenService        *service.TokenService
	authService         *service.AuthService
	oauthService        *service.OAuthService
	notesService        *service.NotesService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "notes-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("notes service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down notes service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("notes service stopped")
	return nil
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices builds the business logic services
func (app *Application) initServices() error {
	accessSecret, err := app.secret("JWT_SECRET", app.cfg.JWTSecret)
	if err != nil {
		return err
	}
	refreshSecret, err := app.secret("REFRESH_TOKEN_SECRET", app.cfg.RefreshTokenSecret)
	if err != nil {
		return err
	}

	app.tokenService, err = service.NewTokenService(service.TokenConfig{
		AccessSecret:     accessSecret,
		RefreshSecret:    refreshSecret,
		Issuer:           app.cfg.Issuer,
		AccessTTL:        app.cfg.AccessTokenTTL,
		RefreshTTL:       app.cfg.RefreshTokenTTL,
		MaxRefreshTokens: app.cfg.MaxRefreshTokens,
	}, app.db, app.metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	app.authService = &service.AuthService{
		Store:       app.db,
		Tokens:      app.tokenService,
		Metrics:     app.metrics,
		AdminEmails: app.cfg.AdminEmails,
	}

	if app.cfg.GitHubClientID == "" {
		app.logger.Warn("GITHUB_CLIENT_ID is not set, GitHub sign-in will fail")
	}
	app.oauthService = &service.OAuthService{
		Store:  app.db,
		Tokens: app.tokenService,
		Provider: github.New(github.Config{
			ClientID:     app.cfg.GitHubClientID,
			ClientSecret: app.cfg.GitHubClientSecret,
			CallbackURL:  app.cfg.GitHubCallbackURL,
			AuthURL:      app.cfg.GitHubAuthURL,
			TokenURL:     app.cfg.GitHubTokenURL,
			APIURL:       app.cfg.GitHubAPIURL,
			Timeout:      app.cfg.GitHubTimeout,
		}),
		Metrics:     app.metrics,
		AdminEmails: app.cfg.AdminEmails,
	}

	app.notesService = &service.NotesService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.tokenService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// secret returns the configured secret, or a random one for this process.
// Tokens signed with a generated secret do not survive a restart.
func (app *Application) secret(name, configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	generated, err := cryptox.GenerateToken(cryptox.TokenSize512)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", name, err)
	}
	app.logger.Warn(name+" is not set, using a generated secret; tokens will not survive a restart")
	return []byte(generated), nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokenService.AccessVerifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
		app.cfg.RateLimits,
	)

	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.OAuthService = app.oauthService
	router.NotesService = app.notesService
	router.FrontendURL = app.cfg.FrontendURL
	router.SecureCookies = app.cfg.SecureCookies()
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
