//go:build e2e

package notes_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies login is rate limited. The strict
// limit is 5 requests per minute.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupNotesContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := notesdk.NewSDKClient(baseURL)
	ctx := context.Background()

	var lastErr error
	for i := range 6 {
		_, err := client.PasswordLogin(ctx, "nobody@notes.test", "wrong")
		if i < 5 {
			require.ErrorIs(t, err, notesdk.ErrInvalidCredentials, "request %d should not be rate limited", i+1)
			continue
		}
		lastErr = err
	}

	var apiErr *notesdk.APIError
	require.True(t, errors.As(lastErr, &apiErr))
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}
