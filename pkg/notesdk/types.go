package notesdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// CredentialsRequest is the body of POST /api/v1/auth/register and /login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /api/v1/auth/refresh and /revoke.
// The snake_case alias is accepted for clients that mirror the token response.
type RefreshRequest struct {
	RefreshToken      string `json:"refreshToken"`
	RefreshTokenSnake string `json:"refresh_token,omitempty"`
}

// Token returns whichever of the two fields was supplied.
func (r RefreshRequest) Token() string {
	if r.RefreshToken != "" {
		return r.RefreshToken
	}
	return r.RefreshTokenSnake
}

// RegisterResponse is returned from POST /api/v1/auth/register.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// TokenResponse is returned from login and refresh. ExpiresIn is only set on
// login.
type TokenResponse struct {
	Success bool `json:"success"`

	// AccessToken is the JWT presented as "Authorization: Bearer <token>"
	AccessToken string `json:"access_token"`

	// RefreshToken is single use; every refresh returns a new one
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in,omitempty"`
}

// MessageResponse is a plain {success, message} body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GitHubUserData is the profile snapshot passed to the front-end success page
// in the user_data query parameter.
type GitHubUserData struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	Company     string `json:"company"`
	Blog        string `json:"blog"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ============================================================================
// Note Types
// ============================================================================

// Author is the populated note owner.
type Author struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Note is a note as returned by the API.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    Author    `json:"author"`
	IsPublic  bool      `json:"isPublic"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput is the body of POST /api/v1/notes.
type NoteInput struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	IsPublic bool     `json:"isPublic"`
	Tags     []string `json:"tags,omitempty"`
}

// NotePatch is the body of PUT /api/v1/notes/{id}. Nil fields are left as is.
type NotePatch struct {
	Title    *string   `json:"title,omitempty"`
	Body     *string   `json:"body,omitempty"`
	IsPublic *bool     `json:"isPublic,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// NoteResponse wraps a single note.
type NoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Note    Note   `json:"note"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NoteListResponse is returned by the listing endpoints.
type NoteListResponse struct {
	Success    bool       `json:"success"`
	Notes      []Note     `json:"notes"`
	Pagination Pagination `json:"pagination"`
}

// ListOptions are the query parameters of GET /api/v1/notes.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
	Tags   []string
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status indicates the overall health status ("ok" or "degraded")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains dependency check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
