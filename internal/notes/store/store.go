package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional writes when the row changed
	// since it was read. Callers re-read and retry.
	ErrConflict = errors.New("store: version conflict")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and so a
// transaction can never be started from within another one.
type Store interface {
	Users() Users
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by lowercased email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists when the email
	// is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets a new password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateRefreshTokens replaces the user's refresh token list if the row
	// is still at version. Returns ErrConflict otherwise.
	UpdateRefreshTokens(ctx context.Context, userID string, version int64, refs []domain.RefreshTokenRef) error

	// ListUsersWithRefreshTokens returns every user holding at least one
	// refresh token entry (housekeeping).
	ListUsersWithRefreshTokens(ctx context.Context) ([]domain.User, error)
}

// NoteFilter selects notes visible to ViewerID.
type NoteFilter struct {
	ViewerID string

	// Search is a case-insensitive substring matched against title and body.
	Search string

	// Tags keeps notes carrying any of these tags.
	Tags []string

	Limit  int
	Offset int
}

type Notes interface {
	// CreateNote inserts a new note (id is provided by the app via ULID).
	CreateNote(ctx context.Context, n domain.Note) error

	// GetNoteByID returns a note with its author email populated.
	GetNoteByID(ctx context.Context, id string) (domain.Note, error)

	// ListVisibleNotes returns the viewer's own and all public notes
	// matching the filter, newest first.
	ListVisibleNotes(ctx context.Context, f NoteFilter) ([]domain.Note, error)

	// CountVisibleNotes counts what ListVisibleNotes would return without
	// paging.
	CountVisibleNotes(ctx context.Context, f NoteFilter) (int, error)

	// ListNotesByAuthor returns one page of an author's notes, newest first.
	ListNotesByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Note, error)

	// CountNotesByAuthor counts an author's notes.
	CountNotesByAuthor(ctx context.Context, authorID string) (int, error)

	// UpdateNote overwrites title, body, visibility and tags and bumps
	// updated_at.
	UpdateNote(ctx context.Context, n domain.Note) error

	// DeleteNote removes a note. Returns ErrNotFound when nothing was deleted.
	DeleteNote(ctx context.Context, id string) error
}
