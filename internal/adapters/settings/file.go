package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/gofrs/flock"

	"syncednotes/internal/domain"
)

const (
	// DefaultKey is the top-level settings key holding the notes array
	DefaultKey = "syncedNotes.notes"

	defaultLockTimeout = 3 * time.Second
	lockRetryDelay     = 10 * time.Millisecond
)

var emptyNotes = []byte("[]")

// FileStore implements ports.SettingsStore on a JSON settings file.
// Only the notes key is rewritten; every other setting is left as is.
type FileStore struct {
	path        string
	key         string
	lockTimeout time.Duration
	logger      *slog.Logger
}

// Option customizes a FileStore
type Option func(*FileStore)

// WithKey sets the top-level key holding the notes
func WithKey(key string) Option {
	return func(s *FileStore) { s.key = key }
}

// WithLockTimeout bounds how long Load and Save wait for the file lock
func WithLockTimeout(d time.Duration) Option {
	return func(s *FileStore) { s.lockTimeout = d }
}

// WithLogger sets the store logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *FileStore) { s.logger = logger }
}

// NewFileStore creates a store for the settings file at path
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:        ExpandHome(path),
		key:         DefaultKey,
		lockTimeout: defaultLockTimeout,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// Path returns the settings file path
func (s *FileStore) Path() string { return s.path }

// Load returns the notes value. A missing file or key yields "[]".
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	unlock, err := s.lock(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return s.extract(data)
}

func (s *FileStore) extract(data []byte) ([]byte, error) {
	value, typ, _, err := jsonparser.Get(data, s.key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return emptyNotes, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}

	switch typ {
	case jsonparser.Array:
		return bytes.Clone(value), nil
	case jsonparser.Null:
		return emptyNotes, nil
	default:
		return nil, &domain.MalformedTreeError{Path: s.key, Reason: fmt.Sprintf("expected array, got %s", typ)}
	}
}

// Save replaces the notes value and writes the file atomically
func (s *FileStore) Save(ctx context.Context, notes []byte) error {
	unlock, err := s.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := s.read()
	if err != nil {
		return err
	}

	updated, err := jsonparser.Set(bytes.Clone(data), notes, s.key)
	if err != nil {
		return fmt.Errorf("failed to update settings %s: %w", s.path, err)
	}

	if err := writeAtomic(s.path, updated); err != nil {
		return err
	}
	s.logger.Debug("settings written", "path", s.path, "bytes", len(updated))
	return nil
}

// read returns the file contents, "{}" when it is missing or blank
func (s *FileStore) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("{}"), nil
	}
	return data, nil
}

func (s *FileStore) lock(ctx context.Context, exclusive bool) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	fl := flock.New(s.path + ".lock")
	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = fl.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = fl.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock settings %s: %w", s.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock settings %s: timed out after %s", s.path, s.lockTimeout)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("failed to unlock settings", "path", s.path, "error", err)
		}
	}, nil
}

// writeAtomic writes to a temp file in the same directory and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp settings file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set settings file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
