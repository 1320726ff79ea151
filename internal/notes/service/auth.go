package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/idx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// AuthService handles email/password accounts.
type AuthService struct {
	Store   store.Store
	Tokens  *TokenService
	Metrics *metrics.Metrics

	// AdminEmails are granted the ADMIN role when their account is created.
	AdminEmails []string

	dummyOnce sync.Once
	dummyHash string
}

// Register creates a user with the default roles. It does not log the user
// in.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, newError(ErrValidation, "Email and password are required")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Roles:        rolesForEmail(s.AdminEmails, email),
	}

	// The unique index decides races between two registrations.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials and issues a token pair. Unknown emails and wrong
// passwords fail the same way and take the same time.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.TokenPair{}, newError(ErrValidation, "Email and password are required")
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, fmt.Errorf("get user: %w", err)
		}
		_ = cryptox.CheckPassword(password, s.dummy())
		s.Metrics.LoginAttempts.WithLabelValues(metrics.OutcomeInvalid).Inc()
		l.Info("login failed", slog.String("reason", "unknown_email"))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if !cryptox.CheckPassword(password, user.PasswordHash) {
		s.Metrics.LoginAttempts.WithLabelValues(metrics.OutcomeInvalid).Inc()
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", user.ID))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	// Imported bcrypt hashes are upgraded on the first successful login.
	if cryptox.NeedsRehash(user.PasswordHash) {
		if hash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
				l.Warn("failed to upgrade password hash", slog.String("user_id", user.ID), slog.Any("error", err))
			}
		}
	}

	pair, err := s.Tokens.Issue(ctx, user, metrics.SourceLogin)
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	l.Info("user logged in", slog.String("user_id", user.ID))
	return pair, nil
}

// dummy returns a hash that no password matches, computed once with the
// live pepper and parameters.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		if pw, err := cryptox.GeneratePassword(); err == nil {
			s.dummyHash, _ = cryptox.HashPassword(pw)
		}
	})
	return s.dummyHash
}
