package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"syncednotes/internal/adapters/settings"
	"syncednotes/internal/application"
	"syncednotes/internal/domain"
	"syncednotes/internal/ports"
)

// seed is:
//
//	Work/
//	  Meetings/
//	    standup
//	  todo
//	Empty/
//	readme
func seed() []byte {
	return fmt.Appendf(nil, `[{"Work":[{"Meetings":[{"standup":%q}]},{"todo":%q}]},{"Empty":[]},{"readme":%q}]`,
		domain.Encode("daily at 9\nblockers first"), domain.Encode("- ship it"), domain.Encode("hello"))
}

func newMemory(t *testing.T, notes string) *settings.MemoryStore {
	t.Helper()
	return settings.NewMemoryStore([]byte(notes))
}

func newStore(t *testing.T) (*application.NoteStore, *settings.MemoryStore) {
	t.Helper()
	mem := settings.NewMemoryStore(seed())
	store := application.NewNoteStore(mem)
	require.NoError(t, store.Load(context.Background()))
	return store, mem
}

func idOf(t *testing.T, store *application.NoteStore, path string) *domain.NodeID {
	t.Helper()
	n, err := application.Resolve(store.Snapshot(), path)
	require.NoError(t, err)
	return At(n.ID())
}

func exists(store *application.NoteStore, path string) bool {
	_, err := application.Resolve(store.Snapshot(), path)
	return err == nil
}

// seedValue encodes text for splicing into a JSON string literal
func seedValue(text string) string {
	return domain.Encode(text)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// script answers prompts in order. An empty pick or input backs out.
type script struct {
	t       *testing.T
	picks   []string
	inputs  []string
	confirm []bool

	titles   []string
	offered  [][]string
	initials []string
}

var errExhausted = errors.New("script exhausted")

func (s *script) Choose(ctx context.Context, title string, choices []ports.Choice) (int, bool, error) {
	s.titles = append(s.titles, title)
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	s.offered = append(s.offered, labels)
	if len(s.picks) == 0 {
		return 0, false, errExhausted
	}
	pick := s.picks[0]
	s.picks = s.picks[1:]
	if pick == "" {
		return 0, false, nil
	}
	for i, c := range choices {
		if c.Label == pick {
			return i, true, nil
		}
	}
	s.t.Fatalf("choice %q not offered in %q", pick, title)
	return 0, false, nil
}

func (s *script) Input(ctx context.Context, title, initial string) (string, bool, error) {
	s.titles = append(s.titles, title)
	s.initials = append(s.initials, initial)
	if len(s.inputs) == 0 {
		return "", false, errExhausted
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, v != "", nil
}

func (s *script) Confirm(ctx context.Context, question string) (bool, error) {
	s.titles = append(s.titles, question)
	if len(s.confirm) == 0 {
		return false, errExhausted
	}
	v := s.confirm[0]
	s.confirm = s.confirm[1:]
	return v, nil
}

func interactive(s *script) Interaction {
	return Interaction{Prompter: s}
}
