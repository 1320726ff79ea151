// Package github talks to GitHub for the OAuth2 sign-in: building the
// authorize URL, exchanging the code and reading the user's profile.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"golang.org/x/oauth2"
	ghendpoint "golang.org/x/oauth2/github"
)

const (
	// DefaultAPIURL is the public GitHub REST API.
	DefaultAPIURL = "https://api.github.com"

	// DefaultTimeout bounds every call made to GitHub through the request
	// context.
	DefaultTimeout = 10 * time.Second

	apiVersion = "2022-11-28"
)

// Scopes requested on the authorize redirect.
var Scopes = []string{"read:user", "user:email"}

var (
	ErrNoAccessToken = errors.New("github: no access token in exchange response")
	ErrNoEmail       = errors.New("github: account has no email address")
	ErrUnexpected    = errors.New("github: unexpected response")
)

// Config holds the OAuth app registration. The URL fields are only set for
// GitHub Enterprise or tests; empty means github.com.
type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string

	AuthURL  string
	TokenURL string
	APIURL   string

	Timeout time.Duration
}

// Client is a GitHub OAuth2 client. It is safe for concurrent use.
type Client struct {
	oauth   *oauth2.Config
	apiURL  string
	timeout time.Duration
	http    *http.Client
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	endpoint := ghendpoint.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	apiURL := strings.TrimSuffix(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       Scopes,
		},
		apiURL:  apiURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// AuthCodeURL returns the authorize URL carrying client_id, redirect_uri,
// scope and state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a GitHub access token. No retry
// is attempted; codes are single use.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("github: exchange code: %w", err)
	}
	if tok.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return tok.AccessToken, nil
}

// FetchProfile reads GET /user.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (domain.GitHubProfile, error) {
	var profile domain.GitHubProfile
	if err := c.getJSON(ctx, accessToken, "/user", &profile); err != nil {
		return domain.GitHubProfile{}, err
	}
	return profile, nil
}

// FetchPrimaryEmail reads GET /user/emails and returns the primary address,
// or the first one when none is marked primary.
func (c *Client) FetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []domain.GitHubEmail
	if err := c.getJSON(ctx, accessToken, "/user/emails", &emails); err != nil {
		return "", err
	}
	return PickEmail(emails)
}

// PickEmail chooses the primary entry, else the first.
func PickEmail(emails []domain.GitHubEmail) (string, error) {
	for _, e := range emails {
		if e.Primary && e.Email != "" {
			return e.Email, nil
		}
	}
	if len(emails) > 0 && emails[0].Email != "" {
		return emails[0].Email, nil
	}
	return "", ErrNoEmail
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) getJSON(ctx context.Context, accessToken, path string, target any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	// The oauth2 transport adds the Authorization header.
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s: status %d: %s", ErrUnexpected, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUnexpected, path, err)
	}
	return nil
}
