package notesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// GitHubLoginURL is where a browser is sent to start the GitHub sign-in.
func (c *SDKClient) GitHubLoginURL() string {
	return c.url("/auth/github")
}

// ErrOAuthFailed is returned by ParseSuccessRedirect when the service sent the
// browser to the front-end error page.
var ErrOAuthFailed = errors.New("notesdk: github oauth failed")

// ParseSuccessRedirect extracts the token pair and profile from the front-end
// redirect issued at the end of a GitHub sign-in.
func ParseSuccessRedirect(location string) (*TokenResponse, *GitHubUserData, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redirect: %w", err)
	}

	q := u.Query()
	if q.Get("error") != "" {
		return nil, nil, fmt.Errorf("%w: %s", ErrOAuthFailed, q.Get("error"))
	}

	tokens := &TokenResponse{
		Success:      true,
		AccessToken:  q.Get("access_token"),
		RefreshToken: q.Get("refresh_token"),
		TokenType:    "Bearer",
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return nil, nil, errors.New("redirect is missing tokens")
	}

	var user GitHubUserData
	if raw := q.Get("user_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, nil, fmt.Errorf("invalid user_data: %w", err)
		}
	}

	return tokens, &user, nil
}
