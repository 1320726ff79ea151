//go:build e2e

package notes_test

import (
	"testing"

	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/stretchr/testify/require"
)

// TestNotesOwnershipAndVisibility covers the note rules end to end: private
// notes are hidden from others, only the author edits, and the author or an
// admin deletes.
func TestNotesOwnershipAndVisibility(t *testing.T) {
	baseURL, cleanup := setupNotesContainer(t)
	defer cleanup()

	client := notesdk.NewSDKClient(baseURL)
	ctx := t.Context()

	alice := registerAndLogin(t, client, "alice@notes.test")
	bob := registerAndLogin(t, client, "bob@notes.test")
	admin := registerAndLogin(t, client, adminEmail)

	private, err := alice.CreateNote(ctx, notesdk.NoteInput{Title: "Shopping", Body: "milk", Tags: []string{"home"}})
	require.NoError(t, err)
	public, err := alice.CreateNote(ctx, notesdk.NoteInput{Title: "Hello", Body: "world", IsPublic: true})
	require.NoError(t, err)

	_, err = bob.GetNote(ctx, private.ID)
	require.ErrorIs(t, err, notesdk.ErrAccessDenied)

	list, err := bob.ListNotes(ctx, notesdk.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list.Notes, 1)
	require.Equal(t, public.ID, list.Notes[0].ID)

	search, err := alice.ListNotes(ctx, notesdk.ListOptions{Search: "milk"})
	require.NoError(t, err)
	require.Len(t, search.Notes, 1)

	title := "Hi"
	_, err = bob.UpdateNote(ctx, public.ID, notesdk.NotePatch{Title: &title})
	require.ErrorIs(t, err, notesdk.ErrAccessDenied)

	updated, err := alice.UpdateNote(ctx, public.ID, notesdk.NotePatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Hi", updated.Title)

	require.ErrorIs(t, bob.DeleteNote(ctx, public.ID), notesdk.ErrAccessDenied)
	require.NoError(t, admin.DeleteNote(ctx, public.ID))
	require.NoError(t, alice.DeleteNote(ctx, private.ID))

	mine, err := alice.MyNotes(ctx, notesdk.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, mine.Notes)
}
