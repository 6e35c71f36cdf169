// Package logger wires the app's slog setup: a pretty console handler for
// interactive use plus a rolling JSON file for after-the-fact debugging.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	LogDir     string
	LogFile    string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Level      slog.Level
}

// DefaultConfig logs under ~/.gasspoll/logs.
func DefaultConfig() Config {
	dir := "logs"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".gasspoll", "logs")
	}
	return Config{
		LogDir:     dir,
		LogFile:    "gpm.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 30,
		Level:      slog.LevelInfo,
	}
}

// multiHandler fans out log records to multiple slog handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// New creates the dual-output logger: JSON rolling file + tinted console on
// stderr. The returned Closer flushes the file writer.
func New(cfg Config) (*slog.Logger, io.Closer) {
	_ = os.MkdirAll(cfg.LogDir, 0o755)

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, cfg.LogFile),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}
	fileHandler := slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: cfg.Level})

	consoleHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.Level,
		TimeFormat: "15:04:05",
	})

	multi := &multiHandler{handlers: []slog.Handler{fileHandler, consoleHandler}}
	return slog.New(multi), lj
}
