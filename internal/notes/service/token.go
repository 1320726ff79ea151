package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/metrics"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

const (
	// DefaultMaxRefreshTokens caps how many refresh tokens a user may hold.
	DefaultMaxRefreshTokens = 10

	// maxListWriteAttempts bounds the read-modify-write retries on a
	// refresh token list under concurrent writers.
	maxListWriteAttempts = 5
)

var (
	errTokenNotInList = errors.New("refresh token not in list")
	errNothingToPrune = errors.New("nothing to prune")
)

// TokenConfig holds the immutable token settings injected at start.
type TokenConfig struct {
	AccessSecret     []byte
	RefreshSecret    []byte
	Issuer           string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	MaxRefreshTokens int
}

// TokenService issues, rotates and revokes token pairs. Access tokens are
// stateless; refresh tokens are tracked by fingerprint on the user record.
type TokenService struct {
	Store   store.Store
	Metrics *metrics.Metrics

	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	AccessVerifier  jwtx.Verifier
	RefreshVerifier jwtx.Verifier

	Issuer           string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	MaxRefreshTokens int

	// Now is overridable in tests.
	Now func() time.Time
}

// NewTokenService builds signers and verifiers for both token classes.
func NewTokenService(cfg TokenConfig, st store.Store, m *metrics.Metrics) (*TokenService, error) {
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return nil, errors.New("access and refresh secrets must differ")
	}

	accessSigner, err := jwtx.NewSignerHS256(cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("access secret: %w", err)
	}
	refreshSigner, err := jwtx.NewSignerHS256(cfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("refresh secret: %w", err)
	}

	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = jwtx.DefaultAccessTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	if cfg.MaxRefreshTokens <= 0 {
		cfg.MaxRefreshTokens = DefaultMaxRefreshTokens
	}

	return &TokenService{
		Store:   st,
		Metrics: m,

		AccessSigner:  accessSigner,
		RefreshSigner: refreshSigner,
		AccessVerifier: jwtx.NewVerifierHS256(cfg.AccessSecret, jwtx.VerifyOptions{
			Issuer: cfg.Issuer,
			Type:   jwtx.TypeAccess,
		}),
		RefreshVerifier: jwtx.NewVerifierHS256(cfg.RefreshSecret, jwtx.VerifyOptions{
			Issuer: cfg.Issuer,
			Type:   jwtx.TypeRefresh,
		}),

		Issuer:           cfg.Issuer,
		AccessTTL:        cfg.AccessTTL,
		RefreshTTL:       cfg.RefreshTTL,
		MaxRefreshTokens: cfg.MaxRefreshTokens,
		Now:              time.Now,
	}, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// SignAccess signs an access token carrying the user's id and roles.
func (s *TokenService) SignAccess(user domain.User, now time.Time) (string, error) {
	return s.AccessSigner.Sign(jwtx.NewAccessClaims(user.ID, user.Roles, s.AccessTTL, s.Issuer, now))
}

// SignRefresh signs a refresh token and returns the list entry tracking it.
func (s *TokenService) SignRefresh(userID string, now time.Time) (string, domain.RefreshTokenRef, error) {
	claims := jwtx.NewRefreshClaims(userID, s.RefreshTTL, s.Issuer, now)
	token, err := s.RefreshSigner.Sign(claims)
	if err != nil {
		return "", domain.RefreshTokenRef{}, err
	}
	return token, domain.RefreshTokenRef{
		Fingerprint: cryptox.FingerprintToken(token),
		IssuedAt:    now,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// Issue signs a new pair for user and records the refresh token. source is
// one of the metrics.Source* values.
func (s *TokenService) Issue(ctx context.Context, user domain.User, source string) (domain.TokenPair, error) {
	now := s.now()

	refreshToken, ref, err := s.SignRefresh(user.ID, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	current, err := s.mutateRefreshTokens(ctx, user.ID, func(u domain.User) ([]domain.RefreshTokenRef, error) {
		return append(u.RefreshTokens, ref), nil
	})
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("record refresh token: %w", err)
	}

	accessToken, err := s.SignAccess(current, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	s.Metrics.TokensIssued.WithLabelValues(source).Inc()

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    domain.TokenType,
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Refresh rotates a refresh token: the presented token leaves the user's
// list and a new one takes its place in the same conditional write. A token
// that verifies but is no longer listed was already rotated or revoked.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return domain.TokenPair{}, newError(ErrValidation, "Refresh token required")
	}

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		l.Debug("refresh token rejected", slog.Any("error", err))
		s.Metrics.RefreshAttempts.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return domain.TokenPair{}, ErrInvalidRefresh
	}
	userID := claims.Identity()
	fingerprint := cryptox.FingerprintToken(refreshToken)

	now := s.now()
	newRefresh, ref, err := s.SignRefresh(userID, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	user, err := s.mutateRefreshTokens(ctx, userID, func(u domain.User) ([]domain.RefreshTokenRef, error) {
		i := u.IndexRefreshToken(fingerprint)
		if i < 0 {
			return nil, errTokenNotInList
		}
		refs := make([]domain.RefreshTokenRef, 0, len(u.RefreshTokens))
		refs = append(refs, u.RefreshTokens[:i]...)
		refs = append(refs, u.RefreshTokens[i+1:]...)
		return append(refs, ref), nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		l.Info("refresh for unknown user", slog.String("user_id", userID))
		s.Metrics.RefreshAttempts.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return domain.TokenPair{}, ErrInvalidRefresh
	case errors.Is(err, errTokenNotInList):
		l.Warn("refresh token reuse detected", slog.String("user_id", userID), slog.String("jti", claims.ID))
		s.Metrics.RefreshAttempts.WithLabelValues(metrics.OutcomeReuse).Inc()
		return domain.TokenPair{}, ErrInvalidRefresh
	case err != nil:
		s.Metrics.RefreshAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return domain.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	accessToken, err := s.SignAccess(user, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	s.Metrics.RefreshAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.Metrics.TokensIssued.WithLabelValues(metrics.SourceRefresh).Inc()

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    domain.TokenType,
	}, nil
}

// Revoke removes a refresh token from its user's list. Tokens that fail
// verification, belong to no user or are already gone are not an error.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	l := slogx.FromContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return newError(ErrValidation, "Refresh token required")
	}

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		l.Debug("revoke with invalid token", slog.Any("error", err))
		return nil
	}
	fingerprint := cryptox.FingerprintToken(refreshToken)

	_, err = s.mutateRefreshTokens(ctx, claims.Identity(), func(u domain.User) ([]domain.RefreshTokenRef, error) {
		i := u.IndexRefreshToken(fingerprint)
		if i < 0 {
			return nil, errTokenNotInList
		}
		refs := make([]domain.RefreshTokenRef, 0, len(u.RefreshTokens)-1)
		refs = append(refs, u.RefreshTokens[:i]...)
		return append(refs, u.RefreshTokens[i+1:]...), nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, errTokenNotInList):
		l.Debug("revoke of unknown refresh token", slog.String("user_id", claims.Identity()))
		return nil
	case err != nil:
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	l.Info("refresh token revoked", slog.String("user_id", claims.Identity()))
	return nil
}

// PruneExpired drops expired entries from every user's list and returns how
// many were removed.
func (s *TokenService) PruneExpired(ctx context.Context) (int, error) {
	users, err := s.Store.Users().ListUsersWithRefreshTokens(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, u := range users {
		var before, after int
		_, err := s.mutateRefreshTokens(ctx, u.ID, func(cur domain.User) ([]domain.RefreshTokenRef, error) {
			before = len(cur.RefreshTokens)
			kept := domain.PruneRefreshTokens(cur.RefreshTokens, s.now(), s.MaxRefreshTokens)
			after = len(kept)
			if after == before {
				return nil, errNothingToPrune
			}
			return kept, nil
		})
		switch {
		case errors.Is(err, errNothingToPrune), errors.Is(err, store.ErrNotFound):
			continue
		case err != nil:
			return removed, fmt.Errorf("prune user %s: %w", u.ID, err)
		}
		removed += before - after
	}

	s.Metrics.RefreshPruned.Add(float64(removed))
	return removed, nil
}

// mutateRefreshTokens runs a read-modify-write on a user's refresh token
// list. fn sees the freshly read user and returns the new list, which is
// pruned and capped before a write conditioned on the version that was read.
// A lost race re-reads and re-runs fn, so fn must be free of side effects.
// The returned user is the one fn last saw.
func (s *TokenService) mutateRefreshTokens(
	ctx context.Context,
	userID string,
	fn func(u domain.User) ([]domain.RefreshTokenRef, error),
) (domain.User, error) {
	for attempt := 0; attempt < maxListWriteAttempts; attempt++ {
		u, err := s.Store.Users().GetUserByID(ctx, userID)
		if err != nil {
			return domain.User{}, err
		}

		refs, err := fn(u)
		if err != nil {
			return domain.User{}, err
		}
		refs = domain.PruneRefreshTokens(refs, s.now(), s.MaxRefreshTokens)

		err = s.Store.Users().UpdateRefreshTokens(ctx, u.ID, u.Version, refs)
		if errors.Is(err, store.ErrConflict) {
			s.Metrics.RefreshConflicts.Inc()
			continue
		}
		if err != nil {
			return domain.User{}, err
		}
		return u, nil
	}
	return domain.User{}, errContention
}
