package slogx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Logger is a thin context-aware wrapper around slog that accepts
// strongly typed attributes only.
type Logger struct {
	l *slog.Logger
}

func New(h slog.Handler) *Logger {
	return &Logger{l: slog.New(h)}
}

func (l *Logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.l.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (l *Logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.l.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (l *Logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.l.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (l *Logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.l.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	l.l.LogAttrs(ctx, level, msg, attrs...)
}

// ParseLevel converts a textual level ("debug", "info", "warn", "error",
// case-insensitive) into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q: %v", s, err)
	}

	return level, nil
}

func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

func NoteID(id uuid.UUID) slog.Attr {
	return slog.String("note_id", id.String())
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
