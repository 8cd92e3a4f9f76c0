package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// With stores a child logger carrying fields in the context. The request ID
// middleware attaches the trace ID once so every downstream log line has it.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, contextKey{}, From(ctx).With(fields...))
}

// From returns the request-scoped logger, falling back to the process-wide
// one when the context carries none.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
