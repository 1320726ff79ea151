package domain

import (
	"slices"
	"time"
)

// Roles granted to users.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// DefaultRoles are assigned to every new account.
func DefaultRoles() []string { return []string{RoleUser} }

// HasRole reports whether roles contains role.
func HasRole(roles []string, role string) bool { return slices.Contains(roles, role) }

type User struct {
	ID            string
	Email         string // lowercased, unique
	PasswordHash  string // argon2id PHC, bcrypt for imported accounts
	Roles         []string
	RefreshTokens []RefreshTokenRef // valid refresh tokens, oldest first
	Version       int64             // bumped on every refresh token list write
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RefreshTokenRef is one entry of a user's refresh token list. Only the
// fingerprint of the token is kept.
type RefreshTokenRef struct {
	Fingerprint string    `json:"fp"`
	IssuedAt    time.Time `json:"iat"`
	ExpiresAt   time.Time `json:"exp"`
}

// IndexRefreshToken returns the position of fingerprint in the list, or -1.
func (u *User) IndexRefreshToken(fingerprint string) int {
	for i, ref := range u.RefreshTokens {
		if ref.Fingerprint == fingerprint {
			return i
		}
	}
	return -1
}

// PruneRefreshTokens returns refs without entries expired at now, then trims
// the oldest entries until at most limit remain. limit <= 0 disables the cap.
func PruneRefreshTokens(refs []RefreshTokenRef, now time.Time, limit int) []RefreshTokenRef {
	out := make([]RefreshTokenRef, 0, len(refs))
	for _, ref := range refs {
		if now.Before(ref.ExpiresAt) {
			out = append(out, ref)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
