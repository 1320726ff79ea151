// Package githubtest runs a fake GitHub for tests: the token endpoint and the
// two REST calls the sign-in makes.
package githubtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/github"
)

const (
	// ValidCode is the only authorization code the fake accepts.
	ValidCode = "good-code"

	// AccessToken is what the fake hands out for ValidCode.
	AccessToken = "gho_fake_access_token"
)

// Server is a fake GitHub. Zero Profile/Emails fields are served as-is.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	Profile domain.GitHubProfile
	Emails  []domain.GitHubEmail
	hits    map[string]int
	delay   time.Duration
}

// NewServer starts a fake GitHub serving profile and emails. It is closed
// when the test ends.
func NewServer(t testing.TB, profile domain.GitHubProfile, emails []domain.GitHubEmail) *Server {
	t.Helper()

	s := &Server{Profile: profile, Emails: emails, hits: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login/oauth/access_token", s.token)
	mux.HandleFunc("GET /user", s.authed(func(w http.ResponseWriter) { s.writeJSON(w, s.Profile) }))
	mux.HandleFunc("GET /user/emails", s.authed(func(w http.ResponseWriter) { s.writeJSON(w, s.Emails) }))

	s.Server = httptest.NewServer(s.count(mux))
	t.Cleanup(s.Close)
	return s
}

// Config returns a github.Config pointing every URL at the fake.
func (s *Server) Config() github.Config {
	return github.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "http://localhost/auth/github/callback",
		AuthURL:      s.URL + "/login/oauth/authorize",
		TokenURL:     s.URL + "/login/oauth/access_token",
		APIURL:       s.URL,
	}
}

// SetDelay makes every following request wait d before it is answered, or
// until the client gives up.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Hits returns how many requests path received.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns how many requests the fake received.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// GitHub reports a bad code with 200 and an error body.
	if r.PostForm.Get("code") != ValidCode {
		s.writeJSON(w, map[string]string{
			"error":             "bad_verification_code",
			"error_description": "The code passed is incorrect or expired.",
		})
		return
	}

	s.writeJSON(w, map[string]string{
		"access_token": AccessToken,
		"token_type":   "bearer",
		"scope":        strings.Join(github.Scopes, ","),
	})
}

func (s *Server) authed(next func(http.ResponseWriter)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+AccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		next(w)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
