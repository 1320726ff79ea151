package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token TTL constants. Both can be overridden through configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Access tokens are never checked against the store, so keep it short.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType distinguishes access tokens from refresh tokens. It is carried in
// the "typ" claim so a token minted for one purpose can never be accepted for
// the other, even if both secrets were accidentally configured the same.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims are the claims carried by both token classes. Refresh tokens leave
// Roles empty.
type Claims struct {
	jwt.RegisteredClaims

	// UserID duplicates the subject under the "id" key that front-end code
	// reads when decoding the access token.
	UserID string `json:"id"`

	// Roles assigned to the user at issuance, e.g. ["USER"] or ["USER","ADMIN"].
	Roles []string `json:"roles,omitempty"`

	// Type is "access" or "refresh".
	Type TokenType `json:"typ"`
}

// NewAccessClaims builds claims for an access token.
func NewAccessClaims(userID string, roles []string, ttl time.Duration, issuer string, now time.Time) Claims {
	c := newClaims(userID, TypeAccess, ttl, issuer, now)
	c.Roles = roles
	return c
}

// NewRefreshClaims builds claims for a refresh token. Only the user id is
// embedded; roles are re-read from the store on rotation.
func NewRefreshClaims(userID string, ttl time.Duration, issuer string, now time.Time) Claims {
	return newClaims(userID, TypeRefresh, ttl, issuer, now)
}

func newClaims(userID string, typ TokenType, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID: userID,
		Type:   typ,
	}
}

// NewJTI returns a random identifier for the "jti" claim. Without it two
// tokens for the same user signed within the same second would be identical.
func NewJTI() string {
	return uuid.NewString()
}

// Identity returns the user id, preferring the "id" claim over the subject.
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateType checks the "typ" claim.
func (c *Claims) ValidateType(expected TokenType) error {
	if expected == "" {
		return nil
	}
	if c.Type != expected {
		return ErrWrongType
	}
	return nil
}
