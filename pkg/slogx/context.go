package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request-scoped logger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithRequestID tags the context logger with a request id.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return WithAttrs(ctx, "req_id", reqID)
}

// WithUserID tags the context logger with the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return WithAttrs(ctx, "user_id", userID)
}

// WithAttrs returns a context whose logger carries the extra key/value pairs.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}
