package domain

import "time"

// TokenType is always "Bearer".
const TokenType = "Bearer"

// TokenPair is what login, refresh and the OAuth bridge hand back to the
// client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string

	// ExpiresIn is the access token lifetime. Zero on refresh responses.
	ExpiresIn time.Duration
}
