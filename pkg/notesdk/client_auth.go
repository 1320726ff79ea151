package notesdk

import (
	"context"
	"net/http"
)

// Register creates a local account.
func (c *SDKClient) Register(ctx context.Context, email, password string) (*RegisterResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register",
		CredentialsRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// PasswordLogin exchanges credentials for a token pair.
func (c *SDKClient) PasswordLogin(ctx context.Context, email, password string) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login",
		CredentialsRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns a Session that refreshes itself.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	tokens, err := c.PasswordLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(tokens), nil
}

// Refresh rotates a refresh token. The presented token is invalid afterwards.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/refresh",
		RefreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Revoke invalidates a refresh token. The server answers success for unknown
// tokens too, so a nil error says nothing about whether the token was live.
func (c *SDKClient) Revoke(ctx context.Context, refreshToken string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/revoke",
		RefreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
