package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx. Without one it falls
// back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if logger, _ := ctx.Value(ctxKey{}).(*log.Logger); logger != nil {
		return logger
	}
	return Default()
}

// WithFields derives a logger carrying keyvals from the one in ctx. The
// child snapshots the parent's level, so set levels before calling it.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
