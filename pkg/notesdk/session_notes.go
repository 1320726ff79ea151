package notesdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CreateNote creates a note owned by the session user.
func (s *Session) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	var out NoteResponse
	if err := s.do(ctx, http.MethodPost, "/api/v1/notes", in, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Note, nil
}

// ListNotes lists notes visible to the session user: their own and every
// public note.
func (s *Session) ListNotes(ctx context.Context, opts ListOptions) (*NoteListResponse, error) {
	return s.list(ctx, "/api/v1/notes", opts)
}

// MyNotes lists only the session user's notes.
func (s *Session) MyNotes(ctx context.Context, opts ListOptions) (*NoteListResponse, error) {
	return s.list(ctx, "/api/v1/notes/my", opts)
}

func (s *Session) list(ctx context.Context, path string, opts ListOptions) (*NoteListResponse, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if len(opts.Tags) > 0 {
		q.Set("tags", strings.Join(opts.Tags, ","))
	}
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out NoteListResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNote fetches a single note.
func (s *Session) GetNote(ctx context.Context, id string) (*Note, error) {
	var out NoteResponse
	if err := s.do(ctx, http.MethodGet, "/api/v1/notes/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Note, nil
}

// UpdateNote applies a partial update. Only the owner may update a note.
func (s *Session) UpdateNote(ctx context.Context, id string, patch NotePatch) (*Note, error) {
	var out NoteResponse
	if err := s.do(ctx, http.MethodPut, "/api/v1/notes/"+url.PathEscape(id), patch, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Note, nil
}

// DeleteNote removes a note. The owner and admins may delete.
func (s *Session) DeleteNote(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/api/v1/notes/"+url.PathEscape(id), nil, nil, http.StatusOK)
}
