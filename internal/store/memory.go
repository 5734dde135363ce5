package store

import (
	"context"
	"sync"

	"github.com/dyluth/fuse/pkg/gamelog"
)

// MemoryStore keeps the log in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries []gamelog.Entry
	saves   int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(entries ...gamelog.Entry) *MemoryStore {
	return &MemoryStore{entries: append([]gamelog.Entry(nil), entries...)}
}

// Load returns a copy of the stored log.
func (m *MemoryStore) Load(ctx context.Context) ([]gamelog.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]gamelog.Entry(nil), m.entries...), nil
}

// Save replaces the stored log with a copy of entries.
func (m *MemoryStore) Save(ctx context.Context, entries []gamelog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]gamelog.Entry(nil), entries...)
	m.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
