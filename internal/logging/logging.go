package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey struct{}

// Setup creates the logger used by commands. It writes text records to
// stderr at Debug level when debug is set and at Warn level otherwise, so
// normal runs only show problems.
func Setup(debug bool) *slog.Logger {
	return New(os.Stderr, debug)
}

// New is Setup with an explicit destination.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the logger from the context.
// If no logger is found in the context, returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
