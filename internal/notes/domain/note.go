package domain

import "time"

// Limits on note fields, counted in runes.
const (
	MaxNoteTitle = 200
	MaxNoteBody  = 5000
)

type Note struct {
	ID          string
	Title       string
	Body        string
	AuthorID    string
	AuthorEmail string // populated on read
	IsPublic    bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VisibleTo reports whether userID may read the note.
func (n *Note) VisibleTo(userID string) bool {
	return n.IsPublic || n.AuthorID == userID
}

// NoteInput carries the fields of a new note.
type NoteInput struct {
	Title    string
	Body     string
	IsPublic bool
	Tags     []string
}

// NotePatch is a partial update; nil fields are left unchanged.
type NotePatch struct {
	Title    *string
	Body     *string
	IsPublic *bool
	Tags     *[]string
}

// Page is one page of notes together with the total match count.
type Page struct {
	Notes []Note
	Page  int
	Limit int
	Total int
}

// Pages returns the number of pages needed for Total at Limit per page.
func (p Page) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}
