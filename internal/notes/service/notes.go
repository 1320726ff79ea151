package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/idx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// Paging defaults for the list endpoints.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery selects a page of visible notes.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Tags   []string
}

// NotesService implements note CRUD. Notes are readable by their author and,
// when public, by everyone. Only the author edits; the author or an admin
// deletes.
type NotesService struct {
	Store store.Store
}

// List returns the viewer's notes and all public notes, newest first.
func (s *NotesService) List(ctx context.Context, viewerID string, q ListQuery) (domain.Page, error) {
	page, limit := normalizePaging(q.Page, q.Limit)
	filter := store.NoteFilter{
		ViewerID: viewerID,
		Search:   strings.TrimSpace(q.Search),
		Tags:     cleanTags(q.Tags),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	notes, err := s.Store.Notes().ListVisibleNotes(ctx, filter)
	if err != nil {
		return domain.Page{}, fmt.Errorf("list notes: %w", err)
	}
	total, err := s.Store.Notes().CountVisibleNotes(ctx, filter)
	if err != nil {
		return domain.Page{}, fmt.Errorf("count notes: %w", err)
	}

	return domain.Page{Notes: notes, Page: page, Limit: limit, Total: total}, nil
}

// ListMine returns only the viewer's notes, newest first.
func (s *NotesService) ListMine(ctx context.Context, viewerID string, page, limit int) (domain.Page, error) {
	page, limit = normalizePaging(page, limit)

	notes, err := s.Store.Notes().ListNotesByAuthor(ctx, viewerID, limit, (page-1)*limit)
	if err != nil {
		return domain.Page{}, fmt.Errorf("list notes: %w", err)
	}
	total, err := s.Store.Notes().CountNotesByAuthor(ctx, viewerID)
	if err != nil {
		return domain.Page{}, fmt.Errorf("count notes: %w", err)
	}

	return domain.Page{Notes: notes, Page: page, Limit: limit, Total: total}, nil
}

// Get returns a note the viewer may read.
func (s *NotesService) Get(ctx context.Context, viewerID, id string) (domain.Note, error) {
	note, err := getNote(ctx, s.Store, id)
	if err != nil {
		return domain.Note{}, err
	}
	if !note.VisibleTo(viewerID) {
		return domain.Note{}, newError(ErrAccessDenied, "You don't have permission to view this note")
	}
	return note, nil
}

// Create stores a new note owned by authorID.
func (s *NotesService) Create(ctx context.Context, authorID string, in domain.NoteInput) (domain.Note, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" || body == "" {
		return domain.Note{}, newError(ErrValidation, "Title and body are required")
	}
	if err := checkLengths(title, body); err != nil {
		return domain.Note{}, err
	}

	note := domain.Note{
		ID:       idx.New().String(),
		Title:    title,
		Body:     body,
		AuthorID: authorID,
		IsPublic: in.IsPublic,
		Tags:     cleanTags(in.Tags),
	}
	if err := s.Store.Notes().CreateNote(ctx, note); err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}

	slogx.FromContext(ctx).Info("note created", slog.String("note_id", note.ID))
	return getNote(ctx, s.Store, note.ID)
}

// Update applies patch to a note owned by viewerID.
func (s *NotesService) Update(ctx context.Context, viewerID, id string, patch domain.NotePatch) (domain.Note, error) {
	var updated domain.Note

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		note, err := getNote(ctx, tx, id)
		if err != nil {
			return err
		}
		if note.AuthorID != viewerID {
			return newError(ErrAccessDenied, "You can only edit your own notes")
		}

		if patch.Title != nil {
			note.Title = strings.TrimSpace(*patch.Title)
			if note.Title == "" {
				return newError(ErrValidation, "Title cannot be empty")
			}
		}
		if patch.Body != nil {
			note.Body = strings.TrimSpace(*patch.Body)
			if note.Body == "" {
				return newError(ErrValidation, "Body cannot be empty")
			}
		}
		if err := checkLengths(note.Title, note.Body); err != nil {
			return err
		}
		if patch.IsPublic != nil {
			note.IsPublic = *patch.IsPublic
		}
		if patch.Tags != nil {
			note.Tags = cleanTags(*patch.Tags)
		}

		if err := tx.Notes().UpdateNote(ctx, note); err != nil {
			return fmt.Errorf("update note: %w", err)
		}

		updated, err = tx.Notes().GetNoteByID(ctx, note.ID)
		return err
	})
	if err != nil {
		return domain.Note{}, err
	}
	return updated, nil
}

// Delete removes a note. The author and ADMINs may delete.
func (s *NotesService) Delete(ctx context.Context, viewerID string, roles []string, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		note, err := getNote(ctx, tx, id)
		if err != nil {
			return err
		}

		if note.AuthorID != viewerID && !domain.HasRole(roles, domain.RoleAdmin) {
			return newError(ErrAccessDenied, "You can only delete your own notes")
		}

		if err := tx.Notes().DeleteNote(ctx, note.ID); err != nil {
			return fmt.Errorf("delete note: %w", err)
		}

		slogx.FromContext(ctx).Info("note deleted",
			slog.String("note_id", note.ID),
			slog.Bool("by_admin", note.AuthorID != viewerID),
		)
		return nil
	})
}

func getNote(ctx context.Context, st store.Store, id string) (domain.Note, error) {
	parsed, err := idx.Parse(id)
	if err != nil {
		return domain.Note{}, newError(ErrInvalidNoteID, "Invalid note ID format")
	}

	note, err := st.Notes().GetNoteByID(ctx, parsed.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, newError(ErrNoteNotFound, "Note not found")
		}
		return domain.Note{}, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func checkLengths(title, body string) error {
	if utf8.RuneCountInString(title) > domain.MaxNoteTitle {
		return newError(ErrValidation, fmt.Sprintf("Title cannot exceed %d characters", domain.MaxNoteTitle))
	}
	if utf8.RuneCountInString(body) > domain.MaxNoteBody {
		return newError(ErrValidation, fmt.Sprintf("Body cannot exceed %d characters", domain.MaxNoteBody))
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
