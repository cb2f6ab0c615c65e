package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"syncednotes/internal/domain"
	"syncednotes/internal/ports"
)

// NoteStore owns the forest loaded from the settings store.
//
// Published trees are never mutated: Mutate works on a clone and swaps it in
// after a successful save, so a *domain.Tree returned by Snapshot stays
// consistent for as long as the caller holds it.
type NoteStore struct {
	settings ports.SettingsStore
	logger   *slog.Logger
	debug    bool

	mu         sync.RWMutex
	tree       *domain.Tree
	loaded     bool
	lastRaw    []byte
	unreadable map[domain.NodeID]error
	onChange   []func(*domain.Tree)
}

// StoreOption customizes a NoteStore
type StoreOption func(*NoteStore)

// WithLogger sets the logger used to report load and save failures
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *NoteStore) { s.logger = logger }
}

// WithDebug logs every node visited while loading
func WithDebug(debug bool) StoreOption {
	return func(s *NoteStore) { s.debug = debug }
}

// WithOnChange registers fn to run after every successful load or mutation
func WithOnChange(fn func(*domain.Tree)) StoreOption {
	return func(s *NoteStore) { s.onChange = append(s.onChange, fn) }
}

// NewNoteStore creates a store with an empty forest. Call Load to read the
// settings.
func NewNoteStore(settings ports.SettingsStore, opts ...StoreOption) *NoteStore {
	s := &NoteStore{
		settings:   settings,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		tree:       domain.NewTree(),
		unreadable: map[domain.NodeID]error{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the forest with the current settings value.
// A malformed value is reported and the last good forest is kept. A value
// identical to the one last loaded or saved leaves the forest untouched.
func (s *NoteStore) Load(ctx context.Context) error {
	return s.load(ctx, false)
}

// Reload always rebuilds the forest from the settings value, discarding
// node ids handed out before.
func (s *NoteStore) Reload(ctx context.Context) error {
	return s.load(ctx, true)
}

func (s *NoteStore) load(ctx context.Context, force bool) error {
	raw, err := s.settings.Load(ctx)
	if err != nil {
		s.logger.Error("failed to read settings", "error", err)
		return fmt.Errorf("failed to load notes: %w", err)
	}

	s.mu.RLock()
	unchanged := !force && s.loaded && bytes.Equal(raw, s.lastRaw)
	s.mu.RUnlock()
	if unchanged {
		s.logger.Debug("notes unchanged, skipping reload")
		return nil
	}

	var opts []domain.BuildOption
	if s.debug {
		opts = append(opts, domain.WithVisit(func(path string, kind domain.Kind) {
			s.logger.Debug("loaded node", "path", path, "kind", kind.String())
		}))
	}

	tree, err := domain.Build(raw, opts...)
	if err != nil {
		var malformed *domain.MalformedTreeError
		if errors.As(err, &malformed) {
			s.logger.Error("malformed notes value, keeping previous tree",
				"path", malformed.Path, "reason", malformed.Reason)
		}
		return fmt.Errorf("failed to load notes: %w", err)
	}

	unreadable := probe(tree)
	for id, probeErr := range unreadable {
		n, _ := tree.Node(id)
		s.logger.Warn("unreadable note content", "path", tree.Path(id), "label", n.Label(), "error", probeErr)
	}

	s.mu.Lock()
	s.tree = tree
	s.loaded = true
	s.lastRaw = raw
	s.unreadable = unreadable
	listeners := s.onChange
	s.mu.Unlock()

	s.logger.Info("notes loaded", "nodes", tree.Len())
	for _, fn := range listeners {
		fn(tree)
	}
	return nil
}

// probe decodes every note and returns the ones that fail. Those notes are
// kept verbatim so a later save does not lose them.
func probe(tree *domain.Tree) map[domain.NodeID]error {
	bad := map[domain.NodeID]error{}
	tree.Walk(func(n *domain.Node, _ int) bool {
		if n.IsNote() {
			if _, err := domain.Decode(n.EncodedContent()); err != nil {
				bad[n.ID()] = err
			}
		}
		return true
	})
	return bad
}

// Loaded reports whether a Load has succeeded
func (s *NoteStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns the current forest. It must be treated as read-only.
func (s *NoteStore) Snapshot() *domain.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// Unreadable returns the decode error recorded for a note during load, or
// nil when the note decoded fine.
func (s *NoteStore) Unreadable(id domain.NodeID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadable[id]
}

// UnreadableCount returns how many notes failed to decode on load
func (s *NoteStore) UnreadableCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.unreadable)
}

// Save writes the current forest back to the settings store
func (s *NoteStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	return s.write(ctx, s.tree)
}

func (s *NoteStore) write(ctx context.Context, tree *domain.Tree) error {
	data, err := domain.Serialize(tree)
	if err != nil {
		s.logger.Error("failed to serialize notes", "error", err)
		return &SaveError{Err: err}
	}
	if err := s.settings.Save(ctx, data); err != nil {
		s.logger.Error("failed to write settings", "error", err)
		return &SaveError{Err: err}
	}
	s.lastRaw = data
	s.logger.Debug("notes saved", "bytes", len(data))
	return nil
}

// Mutate applies fn to a copy of the forest and saves it. The copy replaces
// the current forest only when both fn and the save succeed. Nothing is
// written before a Load has succeeded, so a rejected settings value is never
// overwritten.
func (s *NoteStore) Mutate(ctx context.Context, fn func(t *domain.Tree) error) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	next := s.tree.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.write(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tree = next
	for id := range s.unreadable {
		if _, ok := next.Node(id); !ok {
			delete(s.unreadable, id)
		}
	}
	listeners := s.onChange
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// AddFolder creates a folder under parent, or at root level for RootLevel
func (s *NoteStore) AddFolder(ctx context.Context, label string, parent domain.NodeID) (domain.NodeID, error) {
	var id domain.NodeID
	err := s.Mutate(ctx, func(t *domain.Tree) error {
		var err error
		if id, err = t.NewFolder(label); err != nil {
			return err
		}
		return attach(t, id, parent)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AddNote creates a note under parent, or at root level for RootLevel
func (s *NoteStore) AddNote(ctx context.Context, label, content string, parent domain.NodeID) (domain.NodeID, error) {
	var id domain.NodeID
	err := s.Mutate(ctx, func(t *domain.Tree) error {
		var err error
		if id, err = t.NewNote(label, content); err != nil {
			return err
		}
		return attach(t, id, parent)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func attach(t *domain.Tree, id, parent domain.NodeID) error {
	if parent == domain.RootLevel {
		return t.AddRoot(id)
	}
	return t.AddChild(parent, id)
}

// NoteCandidates lists the children of level a user may descend into when
// picking a note: notes, and folders with a note somewhere below them.
func NoteCandidates(t *domain.Tree, level domain.NodeID) []*domain.Node {
	var out []*domain.Node
	for _, n := range t.Children(level, domain.NonEmptyTree) {
		if t.ContainsNoteRecursive(n.ID()) {
			out = append(out, n)
		}
	}
	return out
}

// FolderCandidates lists the folders at level, leaving out ignore and
// everything beneath it.
func FolderCandidates(t *domain.Tree, level, ignore domain.NodeID) []*domain.Node {
	var out []*domain.Node
	for _, n := range t.Children(level, domain.OnlyFolders) {
		if ignore != domain.RootLevel && n.ID() == ignore {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Resolve finds the node at a slash separated label path. The first match in
// order wins at every level.
func Resolve(t *domain.Tree, path string) (*domain.Node, error) {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return nil, &ValidationError{Field: "path", Message: "path is required"}
	}

	level := domain.RootLevel
	var found *domain.Node
	for i, label := range parts {
		found = nil
		for _, n := range t.Children(level, domain.AllChildren) {
			if strings.TrimSpace(n.Label()) == label {
				found = n
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if i < len(parts)-1 && !found.IsFolder() {
			return nil, fmt.Errorf("%w: %q is a note", ErrInvalidPath, label)
		}
		level = found.ID()
	}
	return found, nil
}
