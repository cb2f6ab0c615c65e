package application

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"syncednotes/internal/ports"
)

type fakeSettings struct {
	mu      sync.Mutex
	notes   []byte
	saves   int
	saveErr error
}

func newFakeSettings(notes string) *fakeSettings {
	return &fakeSettings{notes: []byte(notes)}
}

func (f *fakeSettings) Load(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return bytes.Clone(f.notes), nil
}

func (f *fakeSettings) Save(ctx context.Context, notes []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.notes = bytes.Clone(notes)
	f.saves++
	return nil
}

func (f *fakeSettings) value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.notes)
}

// scriptedPrompter answers Choose by label, in order. An empty label backs out.
type scriptedPrompter struct {
	t       *testing.T
	picks   []string
	seen    [][]ports.Choice
	inputs  []string
	confirm []bool
}

var errScriptExhausted = errors.New("prompter script exhausted")

func (p *scriptedPrompter) Choose(ctx context.Context, title string, choices []ports.Choice) (int, bool, error) {
	p.seen = append(p.seen, choices)
	if len(p.picks) == 0 {
		return 0, false, errScriptExhausted
	}
	pick := p.picks[0]
	p.picks = p.picks[1:]
	if pick == "" {
		return 0, false, nil
	}
	for i, c := range choices {
		if c.Label == pick {
			return i, true, nil
		}
	}
	p.t.Fatalf("choice %q not offered, got %v", pick, choiceLabels(choices))
	return 0, false, nil
}

func (p *scriptedPrompter) Input(ctx context.Context, title, initial string) (string, bool, error) {
	if len(p.inputs) == 0 {
		return "", false, errScriptExhausted
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, v != "", nil
}

func (p *scriptedPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if len(p.confirm) == 0 {
		return false, errScriptExhausted
	}
	v := p.confirm[0]
	p.confirm = p.confirm[1:]
	return v, nil
}

func choiceLabels(choices []ports.Choice) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Label)
	}
	return out
}
