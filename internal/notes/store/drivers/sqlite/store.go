package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// FileDSN builds a DSN for a database file. Pragmas are set through the DSN
// so every pooled connection gets them. Transactions take the write lock up
// front so busy_timeout applies instead of failing on lock upgrade. Times are
// written in a fixed layout so created_at sorts as text.
func FileDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	q.Set("_time_format", "sqlite")
	return fmt.Sprintf("file:%s?%s", path, q.Encode())
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users { return &usersRepo{q: s.q} }
func (s *Store) Notes() store.Notes { return &notesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns a unique constraint violation into ErrAlreadyExists.
func mapConstraint(err error) error {
	var sqlErr *msqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// encodeStrings never yields "null" so queries can compare against '[]'.
func encodeStrings(s []string) (string, error) {
	if s == nil {
		s = []string{}
	}
	return encodeJSON(s)
}

func decodeStrings(s string) ([]string, error) {
	var out []string
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func mapUser(row gen.User) (domain.User, error) {
	roles, err := decodeStrings(row.Roles)
	if err != nil {
		return domain.User{}, fmt.Errorf("decode roles for %s: %w", row.ID, err)
	}

	var refs []domain.RefreshTokenRef
	if row.RefreshTokens != "" {
		if err := json.Unmarshal([]byte(row.RefreshTokens), &refs); err != nil {
			return domain.User{}, fmt.Errorf("decode refresh tokens for %s: %w", row.ID, err)
		}
	}

	return domain.User{
		ID:            row.ID,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		Roles:         roles,
		RefreshTokens: refs,
		Version:       row.Version,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

// mapNote maps any of the note queries that join the author; their row types
// share one layout and convert to GetNoteByIDRow.
func mapNote(row gen.GetNoteByIDRow) (domain.Note, error) {
	tags, err := decodeStrings(row.Tags)
	if err != nil {
		return domain.Note{}, fmt.Errorf("decode tags for %s: %w", row.ID, err)
	}

	return domain.Note{
		ID:          row.ID,
		Title:       row.Title,
		Body:        row.Body,
		AuthorID:    row.AuthorID,
		AuthorEmail: row.AuthorEmail,
		IsPublic:    row.IsPublic,
		Tags:        tags,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
