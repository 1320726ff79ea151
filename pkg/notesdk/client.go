package notesdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the notes service. It covers the unauthenticated
// endpoints and creates Sessions for the authenticated ones.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// RefreshLeeway is how long before access token expiry a Session rotates
	// its tokens. Default: 30s
	RefreshLeeway time.Duration
}

// NewSDKClient creates a new notes service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			// The OAuth endpoints answer with redirects the caller wants to see.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		RefreshLeeway: 30 * time.Second,
	}
}
