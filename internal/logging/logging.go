// Package logging builds the structured logger. Records go to a JSON file in
// the user cache directory so they never land on the terminal a prompt or
// the browser is drawing on.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "syncednotes"

// Options configure New
type Options struct {
	Level slog.Level
	// Dir overrides the log directory
	Dir string
	// Stderr also writes text records to w, e.g. os.Stderr for the MCP server
	Stderr io.Writer
}

// New opens the log file and returns a logger writing to it. Close the
// returned closer on exit.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	dir := opts.Dir
	if dir == "" {
		dir = CacheDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, appName+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var handler slog.Handler = slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.Level <= slog.LevelDebug,
	})
	if opts.Stderr != nil {
		handler = &multiHandler{handlers: []slog.Handler{
			handler,
			slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: max(opts.Level, slog.LevelWarn)}),
		}}
	}

	logger := slog.New(handler)
	logger.Debug("logging initialized", "level", opts.Level.String(), "log_file", path)
	return logger, f, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CacheDir returns the XDG cache directory for the application
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Caches", appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// multiHandler fans records out to several handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: out}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: out}
}
