package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite/gen"
)

type notesRepo struct {
	q *gen.Queries
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	tags, err := encodeStrings(n.Tags)
	if err != nil {
		return err
	}

	createdAt := n.CreatedAt.UTC()
	if n.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err = r.q.CreateNote(ctx, gen.CreateNoteParams{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		AuthorID:  n.AuthorID,
		IsPublic:  n.IsPublic,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	return mapConstraint(err)
}

func (r *notesRepo) GetNoteByID(ctx context.Context, id string) (domain.Note, error) {
	row, err := r.q.GetNoteByID(ctx, id)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	return mapNote(row)
}

func (r *notesRepo) ListVisibleNotes(ctx context.Context, f store.NoteFilter) ([]domain.Note, error) {
	params, err := visibleParams(f)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.ListVisibleNotes(ctx, gen.ListVisibleNotesParams{
		ViewerID: params.ViewerID,
		Search:   params.Search,
		Pattern:  params.Pattern,
		Tags:     params.Tags,
		Limit:    int64(f.Limit),
		Offset:   int64(f.Offset),
	})
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		n, err := mapNote(gen.GetNoteByIDRow(row))
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (r *notesRepo) CountVisibleNotes(ctx context.Context, f store.NoteFilter) (int, error) {
	params, err := visibleParams(f)
	if err != nil {
		return 0, err
	}

	n, err := r.q.CountVisibleNotes(ctx, params)
	return int(n), err
}

func (r *notesRepo) ListNotesByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Note, error) {
	rows, err := r.q.ListNotesByAuthor(ctx, gen.ListNotesByAuthorParams{
		AuthorID: authorID,
		Limit:    int64(limit),
		Offset:   int64(offset),
	})
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		n, err := mapNote(gen.GetNoteByIDRow(row))
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (r *notesRepo) CountNotesByAuthor(ctx context.Context, authorID string) (int, error) {
	n, err := r.q.CountNotesByAuthor(ctx, authorID)
	return int(n), err
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) error {
	tags, err := encodeStrings(n.Tags)
	if err != nil {
		return err
	}

	rows, err := r.q.UpdateNote(ctx, gen.UpdateNoteParams{
		Title:     n.Title,
		Body:      n.Body,
		IsPublic:  n.IsPublic,
		Tags:      tags,
		UpdatedAt: time.Now().UTC(),
		ID:        n.ID,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *notesRepo) DeleteNote(ctx context.Context, id string) error {
	rows, err := r.q.DeleteNote(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func visibleParams(f store.NoteFilter) (gen.CountVisibleNotesParams, error) {
	tags, err := encodeStrings(f.Tags)
	if err != nil {
		return gen.CountVisibleNotesParams{}, err
	}

	search := strings.TrimSpace(f.Search)
	return gen.CountVisibleNotesParams{
		ViewerID: f.ViewerID,
		Search:   search,
		Pattern:  "%" + likeEscaper.Replace(search) + "%",
		Tags:     tags,
	}, nil
}

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
