package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"syncednotes/internal/domain"
)

// EditState is the lifecycle state of an EditSession
type EditState int

const (
	Editing EditState = iota
	Saved
	Closed
)

func (s EditState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saved:
		return "saved"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// EditSession ties one note to a scratch file opened in an external editor.
//
// Each save pulls the file back into the note and saves the store. Close
// removes the file exactly once, whatever state the session is in. Two
// sessions on the same note are not prevented: the last save wins.
type EditSession struct {
	store  *NoteStore
	noteID domain.NodeID
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	state EditState
	last  string
}

// EditOption customizes an EditSession
type EditOption func(*EditSession)

// WithEditLogger sets the session logger
func WithEditLogger(logger *slog.Logger) EditOption {
	return func(s *EditSession) { s.logger = logger }
}

// OpenEditSession writes the note's text to a scratch file in dir and
// returns a session in the Editing state. An empty dir means os.TempDir().
func OpenEditSession(store *NoteStore, noteID domain.NodeID, dir string, opts ...EditOption) (*EditSession, error) {
	tree := store.Snapshot()
	if err := ValidateKind(tree, "noteID", noteID, domain.KindNote); err != nil {
		return nil, err
	}
	if err := store.Unreadable(noteID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableNote, err)
	}

	text, err := tree.Content(noteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableNote, err)
	}

	if dir == "" {
		dir = os.TempDir()
	}
	n, _ := tree.Node(noteID)
	path := filepath.Join(dir, domain.TempFileName(n))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	s := &EditSession{
		store:  store,
		noteID: noteID,
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:  Editing,
		last:   text,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debug("edit session opened", "path", path, "note", n.Label())
	return s, nil
}

// Path returns the scratch file path
func (s *EditSession) Path() string { return s.path }

// NoteID returns the note being edited
func (s *EditSession) NoteID() domain.NodeID { return s.noteID }

// State returns the current state
func (s *EditSession) State() EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Save reads the scratch file into the note and saves the store. It
// reports whether the note changed; unchanged text is not written again.
func (s *EditSession) Save(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Closed {
		return false, fmt.Errorf("%w: edit session is closed", ErrInvalidOperation)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("failed to read temp file: %w", err)
	}
	text := string(data)
	if text == s.last {
		return false, nil
	}

	err = s.store.Mutate(ctx, func(t *domain.Tree) error {
		return t.SetContent(s.noteID, text)
	})
	if err != nil {
		s.logger.Error("failed to save edited note", "path", s.path, "error", err)
		return false, fmt.Errorf("failed to save note: %w", err)
	}

	s.last = text
	s.state = Saved
	s.logger.Info("note saved from editor", "path", s.path, "bytes", len(data))
	return true, nil
}

// Close removes the scratch file. Calling it again is a no-op.
func (s *EditSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Closed {
		return nil
	}
	s.state = Closed

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove temp file", "path", s.path, "error", err)
		return fmt.Errorf("failed to remove temp file: %w", err)
	}
	s.logger.Debug("edit session closed", "path", s.path)
	return nil
}
