package settings

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore is an in-memory ports.SettingsStore
type MemoryStore struct {
	mu      sync.Mutex
	notes   []byte
	saves   int
	saveErr error
}

// NewMemoryStore creates a store holding notes. Nil means "[]".
func NewMemoryStore(notes []byte) *MemoryStore {
	if notes == nil {
		notes = emptyNotes
	}
	return &MemoryStore{notes: bytes.Clone(notes)}
}

func (m *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bytes.Clone(m.notes), nil
}

func (m *MemoryStore) Save(ctx context.Context, notes []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.notes = bytes.Clone(notes)
	m.saves++
	return nil
}

// Notes returns the last saved value
func (m *MemoryStore) Notes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bytes.Clone(m.notes)
}

// Saves returns how many saves succeeded
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailSaves makes every following Save return err. Nil clears it.
func (m *MemoryStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Set replaces the stored value, as an external edit would
func (m *MemoryStore) Set(notes []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = bytes.Clone(notes)
}
