package notesdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session represents an authenticated user with automatic token refresh.
// Every Session method rotates the token pair when the access token is about
// to expire.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// NewSession wraps an existing token pair, e.g. one received through the
// GitHub success redirect.
func (c *SDKClient) NewSession(tokens *TokenResponse) *Session {
	s := &Session{client: c}
	s.store(tokens)
	return s
}

// store records a token pair. Refresh responses carry no expires_in, so the
// expiry is read from the access token itself.
func (s *Session) store(tokens *TokenResponse) {
	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken

	var expiresAt time.Time
	if tokens.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	} else {
		expiresAt = accessTokenExpiry(tokens.AccessToken)
	}
	s.expiresAt = expiresAt.Add(-s.client.RefreshLeeway)
}

// accessTokenExpiry reads the exp claim without verifying the signature. The
// client has no secret and only uses it to schedule a refresh.
func accessTokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Now()
	}
	return claims.ExpiresAt.Time
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", errors.New("access token expired and no refresh token available")
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	s.store(tokens)

	return s.accessToken, nil
}

// Refresh forces a rotation of the token pair.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return err
	}
	s.store(tokens)
	return nil
}

// Revoke revokes the current refresh token, ending this session once the
// access token expires.
func (s *Session) Revoke(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.refreshToken = ""
	s.mu.Unlock()

	if refreshToken == "" {
		return errors.New("no refresh token to revoke")
	}
	return s.client.Revoke(ctx, refreshToken)
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// do sends an authenticated request and decodes the response.
func (s *Session) do(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}

	resp, err := s.client.doJSON(ctx, method, path, body, token)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}
