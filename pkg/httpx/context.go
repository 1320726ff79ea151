package httpx

import (
	"context"

	"github.com/aussiebroadwan/notes/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRoles  ctxKey = "roles"
)

// ContextWithAuth attaches the verified identity to ctx.
func ContextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Identity())
	ctx = context.WithValue(ctx, CtxKeyRoles, c.Roles)
	return ctx
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}

// RolesFromContext returns the roles carried by the access token.
func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(CtxKeyRoles).([]string)
	return roles
}
