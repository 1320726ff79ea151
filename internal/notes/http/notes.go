package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
)

// NotesHandler serves the /api/v1/notes endpoints. Every route sits behind
// the bearer guard.
type NotesHandler struct {
	NotesService *service.NotesService
}

// HandleList godoc
//
//	@Summary		List notes
//	@Description	Lists the caller's notes and every public note, newest first.
//	@Tags			Notes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int							false	"Page, from 1"				default(1)
//	@Param			limit	query		int							false	"Page size, at most 100"	default(10)
//	@Param			search	query		string						false	"Substring of title or body"
//	@Param			tags	query		string						false	"Comma separated, any of"
//	@Success		200		{object}	notesdk.NoteListResponse	"success, notes, pagination"
//	@Failure		401		{object}	httpx.ErrorBody				"Unauthorized"
//	@Failure		500		{object}	httpx.ErrorBody				"Server Error"
//	@Router			/api/v1/notes [get].
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())
	q := r.URL.Query()

	page, err := h.NotesService.List(r.Context(), userID, service.ListQuery{
		Page:   queryInt(q.Get("page")),
		Limit:  queryInt(q.Get("limit")),
		Search: q.Get("search"),
		Tags:   splitTags(q.Get("tags")),
	})
	if err != nil {
		writeServiceError(w, r, err, "list notes")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toListResponse(page))
}

// HandleMine godoc
//
//	@Summary		List my notes
//	@Description	Lists only the caller's notes, newest first.
//	@Tags			Notes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int							false	"Page, from 1"				default(1)
//	@Param			limit	query		int							false	"Page size, at most 100"	default(10)
//	@Success		200		{object}	notesdk.NoteListResponse	"success, notes, pagination"
//	@Failure		401		{object}	httpx.ErrorBody				"Unauthorized"
//	@Failure		500		{object}	httpx.ErrorBody				"Server Error"
//	@Router			/api/v1/notes/my [get].
func (h *NotesHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())
	q := r.URL.Query()

	page, err := h.NotesService.ListMine(r.Context(), userID, queryInt(q.Get("page")), queryInt(q.Get("limit")))
	if err != nil {
		writeServiceError(w, r, err, "list my notes")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toListResponse(page))
}

// HandleGet godoc
//
//	@Summary		Get note
//	@Description	Returns a note owned by the caller or marked public.
//	@Tags			Notes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Note id"
//	@Success		200	{object}	notesdk.NoteResponse	"success, note"
//	@Failure		400	{object}	httpx.ErrorBody			"Invalid note ID format"
//	@Failure		401	{object}	httpx.ErrorBody			"Unauthorized"
//	@Failure		403	{object}	httpx.ErrorBody			"Access Denied"
//	@Failure		404	{object}	httpx.ErrorBody			"Note not found"
//	@Router			/api/v1/notes/{id} [get].
func (h *NotesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	note, err := h.NotesService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "get note")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.NoteResponse{Success: true, Note: toNote(note)})
}

// HandleCreate godoc
//
//	@Summary		Create note
//	@Tags			Notes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		notesdk.NoteInput		true	"title, body, isPublic, tags"
//	@Success		201		{object}	notesdk.NoteResponse	"success, message, note"
//	@Failure		400		{object}	httpx.ErrorBody			"Validation Error"
//	@Failure		401		{object}	httpx.ErrorBody			"Unauthorized"
//	@Router			/api/v1/notes [post].
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req notesdk.NoteInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	note, err := h.NotesService.Create(r.Context(), userID, domain.NoteInput{
		Title:    req.Title,
		Body:     req.Body,
		IsPublic: req.IsPublic,
		Tags:     req.Tags,
	})
	if err != nil {
		writeServiceError(w, r, err, "create note")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, notesdk.NoteResponse{
		Success: true,
		Message: "Note created successfully",
		Note:    toNote(note),
	})
}

// HandleUpdate godoc
//
//	@Summary		Update note
//	@Description	Partial update. Omitted fields are left unchanged. Only the author may update.
//	@Tags			Notes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Note id"
//	@Param			request	body		notesdk.NotePatch		true	"title, body, isPublic, tags"
//	@Success		200		{object}	notesdk.NoteResponse	"success, message, note"
//	@Failure		400		{object}	httpx.ErrorBody			"Validation Error"
//	@Failure		401		{object}	httpx.ErrorBody			"Unauthorized"
//	@Failure		403		{object}	httpx.ErrorBody			"You can only edit your own notes"
//	@Failure		404		{object}	httpx.ErrorBody			"Note not found"
//	@Router			/api/v1/notes/{id} [put].
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req notesdk.NotePatch
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	note, err := h.NotesService.Update(r.Context(), userID, r.PathValue("id"), domain.NotePatch{
		Title:    req.Title,
		Body:     req.Body,
		IsPublic: req.IsPublic,
		Tags:     req.Tags,
	})
	if err != nil {
		writeServiceError(w, r, err, "update note")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.NoteResponse{
		Success: true,
		Message: "Note updated successfully",
		Note:    toNote(note),
	})
}

// HandleDelete godoc
//
//	@Summary		Delete note
//	@Description	The author or an ADMIN may delete.
//	@Tags			Notes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Note id"
//	@Success		200	{object}	notesdk.MessageResponse	"success, message"
//	@Failure		400	{object}	httpx.ErrorBody			"Invalid note ID format"
//	@Failure		401	{object}	httpx.ErrorBody			"Unauthorized"
//	@Failure		403	{object}	httpx.ErrorBody			"You can only delete your own notes"
//	@Failure		404	{object}	httpx.ErrorBody			"Note not found"
//	@Router			/api/v1/notes/{id} [delete].
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	if err := h.NotesService.Delete(ctx, userID, httpx.RolesFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "delete note")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.MessageResponse{
		Success: true,
		Message: "Note deleted successfully",
	})
}

func toNote(n domain.Note) notesdk.Note {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return notesdk.Note{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Author:    notesdk.Author{ID: n.AuthorID, Email: n.AuthorEmail},
		IsPublic:  n.IsPublic,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toListResponse(p domain.Page) notesdk.NoteListResponse {
	notes := make([]notesdk.Note, 0, len(p.Notes))
	for _, n := range p.Notes {
		notes = append(notes, toNote(n))
	}
	return notesdk.NoteListResponse{
		Success: true,
		Notes:   notes,
		Pagination: notesdk.Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Total: p.Total,
			Pages: p.Pages(),
		},
	}
}

// queryInt parses a query value, treating anything unparsable as unset.
func queryInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
