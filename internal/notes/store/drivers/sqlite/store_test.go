package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notes/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "notes.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()

	u := domain.User{ID: idx.New().String(), Email: email, PasswordHash: "hash"}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))

	got, err := s.Users().GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return got
}

func TestUsers_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, s, "a@x.com")
	require.Equal(t, []string{domain.RoleUser}, u.Roles)
	require.Empty(t, u.RefreshTokens)
	require.Equal(t, int64(0), u.Version)
	require.False(t, u.CreatedAt.IsZero())

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)

	_, err = s.Users().GetUserByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := domain.User{ID: idx.New().String(), Email: "a@x.com", PasswordHash: "h"}
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
}

func TestUsers_UpdateRefreshTokensIsConditional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@x.com")

	now := time.Now().UTC().Truncate(time.Second)
	refs := []domain.RefreshTokenRef{{Fingerprint: "fp1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}}

	require.NoError(t, s.Users().UpdateRefreshTokens(ctx, u.ID, u.Version, refs))

	// The version moved on; a writer holding the old one loses.
	err := s.Users().UpdateRefreshTokens(ctx, u.ID, u.Version, nil)
	require.ErrorIs(t, err, store.ErrConflict)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Version+1, got.Version)
	require.Len(t, got.RefreshTokens, 1)
	require.Equal(t, "fp1", got.RefreshTokens[0].Fingerprint)
	require.True(t, got.RefreshTokens[0].ExpiresAt.Equal(now.Add(time.Hour)))

	withTokens, err := s.Users().ListUsersWithRefreshTokens(ctx)
	require.NoError(t, err)
	require.Len(t, withTokens, 1)

	require.NoError(t, s.Users().UpdateRefreshTokens(ctx, u.ID, got.Version, nil))
	withTokens, err = s.Users().ListUsersWithRefreshTokens(ctx)
	require.NoError(t, err)
	require.Empty(t, withTokens)
}

func TestNotes_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@x.com")

	n := domain.Note{
		ID:       idx.New().String(),
		Title:    "hello",
		Body:     "world",
		AuthorID: u.ID,
		Tags:     []string{"go"},
	}
	require.NoError(t, s.Notes().CreateNote(ctx, n))

	got, err := s.Notes().GetNoteByID(ctx, n.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Title)
	require.Equal(t, "a@x.com", got.AuthorEmail)
	require.Equal(t, []string{"go"}, got.Tags)
	require.False(t, got.IsPublic)

	got.Title = "changed"
	got.IsPublic = true
	got.Tags = nil
	require.NoError(t, s.Notes().UpdateNote(ctx, got))

	got, err = s.Notes().GetNoteByID(ctx, n.ID)
	require.NoError(t, err)
	require.Equal(t, "changed", got.Title)
	require.True(t, got.IsPublic)
	require.Empty(t, got.Tags)

	require.NoError(t, s.Notes().DeleteNote(ctx, n.ID))
	require.ErrorIs(t, s.Notes().DeleteNote(ctx, n.ID), store.ErrNotFound)

	_, err = s.Notes().GetNoteByID(ctx, n.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotes_ListVisible(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice@x.com")
	bob := createUser(t, s, "bob@x.com")

	base := time.Now().UTC().Add(-time.Hour)
	add := func(author domain.User, title, body string, public bool, tags []string, offset time.Duration) {
		require.NoError(t, s.Notes().CreateNote(ctx, domain.Note{
			ID:        idx.New().String(),
			Title:     title,
			Body:      body,
			AuthorID:  author.ID,
			IsPublic:  public,
			Tags:      tags,
			CreatedAt: base.Add(offset),
		}))
	}

	add(alice, "alice private", "groceries", false, []string{"home"}, 1*time.Minute)
	add(alice, "alice public", "Go tips", true, []string{"go", "tips"}, 2*time.Minute)
	add(bob, "bob private", "secret", false, nil, 3*time.Minute)
	add(bob, "bob public", "100% done", true, []string{"work"}, 4*time.Minute)

	titles := func(notes []domain.Note) []string {
		out := make([]string, 0, len(notes))
		for _, n := range notes {
			out = append(out, n.Title)
		}
		return out
	}

	tests := []struct {
		name   string
		filter store.NoteFilter
		want   []string
	}{
		{
			name:   "own and public newest first",
			filter: store.NoteFilter{ViewerID: alice.ID, Limit: 10},
			want:   []string{"bob public", "alice public", "alice private"},
		},
		{
			name:   "search is case-insensitive over body",
			filter: store.NoteFilter{ViewerID: alice.ID, Search: "GO", Limit: 10},
			want:   []string{"alice public"},
		},
		{
			name:   "search treats wildcards literally",
			filter: store.NoteFilter{ViewerID: alice.ID, Search: "100%", Limit: 10},
			want:   []string{"bob public"},
		},
		{
			name:   "tags match any",
			filter: store.NoteFilter{ViewerID: bob.ID, Tags: []string{"home", "tips"}, Limit: 10},
			want:   []string{"alice public"},
		},
		{
			name:   "paging",
			filter: store.NoteFilter{ViewerID: alice.ID, Limit: 1, Offset: 1},
			want:   []string{"alice public"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := s.Notes().ListVisibleNotes(ctx, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, titles(notes))
		})
	}

	total, err := s.Notes().CountVisibleNotes(ctx, store.NoteFilter{ViewerID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, 3, total)

	mine, err := s.Notes().ListNotesByAuthor(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"bob public", "bob private"}, titles(mine))

	count, err := s.Notes().CountNotesByAuthor(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@x.com")

	noteID := idx.New().String()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Notes().CreateNote(ctx, domain.Note{
			ID: noteID, Title: "t", Body: "b", AuthorID: u.ID,
		}))
		return store.ErrConflict
	})
	require.ErrorIs(t, err, store.ErrConflict)

	_, err = s.Notes().GetNoteByID(ctx, noteID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
