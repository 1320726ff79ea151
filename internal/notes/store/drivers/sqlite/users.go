package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	roles := u.Roles
	if len(roles) == 0 {
		roles = domain.DefaultRoles()
	}
	rolesJSON, err := encodeStrings(roles)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	createdAt := u.CreatedAt.UTC()
	if u.CreatedAt.IsZero() {
		createdAt = now
	}

	err = r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Roles:        rolesJSON,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: newHash,
		UpdatedAt:    time.Now().UTC(),
		ID:           userID,
	})
}

func (r *usersRepo) UpdateRefreshTokens(
	ctx context.Context,
	userID string,
	version int64,
	refs []domain.RefreshTokenRef,
) error {
	if refs == nil {
		refs = []domain.RefreshTokenRef{}
	}
	buf, err := json.Marshal(refs)
	if err != nil {
		return err
	}

	n, err := r.q.UpdateUserRefreshTokens(ctx, gen.UpdateUserRefreshTokensParams{
		RefreshTokens: string(buf),
		UpdatedAt:     time.Now().UTC(),
		ID:            userID,
		Version:       version,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *usersRepo) ListUsersWithRefreshTokens(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsersWithRefreshTokens(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := mapUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
