package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/idx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// GitHubProvider is the part of the GitHub client the sign-in needs.
type GitHubProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (domain.GitHubProfile, error)
	FetchPrimaryEmail(ctx context.Context, accessToken string) (string, error)
}

// OAuthService maps a GitHub identity onto a local user and issues the same
// token pair a password login would.
type OAuthService struct {
	Store    store.Store
	Tokens   *TokenService
	Provider GitHubProvider
	Metrics  *metrics.Metrics

	// AdminEmails are granted the ADMIN role when their account is created.
	AdminEmails []string
}

// AuthCodeURL returns the provider authorize URL for state.
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.Provider.AuthCodeURL(state)
}

// Complete finishes the authorization-code flow for code. The caller must
// already have checked the state. Every provider failure wraps
// ErrProviderFailure.
func (s *OAuthService) Complete(ctx context.Context, code string) (domain.OAuthLogin, error) {
	l := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.OAuthLogin{}, fmt.Errorf("%w: missing code", ErrProviderFailure)
	}

	accessToken, err := s.Provider.Exchange(ctx, code)
	if err != nil {
		return domain.OAuthLogin{}, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	profile, err := s.Provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return domain.OAuthLogin{}, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	// Private emails are missing from the profile.
	email := profile.Email
	if email == "" {
		email, err = s.Provider.FetchPrimaryEmail(ctx, accessToken)
		if err != nil {
			return domain.OAuthLogin{}, fmt.Errorf("%w: %v", ErrProviderFailure, err)
		}
		profile.Email = email
	}
	email = NormalizeEmail(email)
	if email == "" {
		return domain.OAuthLogin{}, fmt.Errorf("%w: no email", ErrProviderFailure)
	}

	user, created, err := s.findOrCreate(ctx, email)
	if err != nil {
		return domain.OAuthLogin{}, err
	}

	pair, err := s.Tokens.Issue(ctx, user, metrics.SourceOAuth)
	if err != nil {
		return domain.OAuthLogin{}, err
	}

	l.Info("github sign-in",
		slog.String("user_id", user.ID),
		slog.Int64("github_id", profile.ID),
		slog.Bool("created", created),
	)
	return domain.OAuthLogin{User: user, Tokens: pair, Profile: profile}, nil
}

// findOrCreate returns the user with email, creating one with a random
// password nobody knows. A concurrent creation is resolved by re-reading.
func (s *OAuthService) findOrCreate(ctx context.Context, email string) (domain.User, bool, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, fmt.Errorf("get user: %w", err)
	}

	placeholder, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.User{}, false, err
	}
	hash, err := cryptox.HashPassword(placeholder)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("hash password: %w", err)
	}

	user = domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Roles:        rolesForEmail(s.AdminEmails, email),
	}
	err = s.Store.Users().CreateUser(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
		if err != nil {
			return domain.User{}, false, fmt.Errorf("get user after race: %w", err)
		}
		return user, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}
