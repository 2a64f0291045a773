// Package persist commits the diagram graph to a key-value cell and
// restores it at startup.
package persist

import "sync"

// Store is a single synchronous cell holding the serialized graph.
// Load reports ok=false when nothing has been saved yet.
type Store interface {
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
}

// MemoryStore keeps the cell in memory.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	ok    bool
	saves int
}

// NewMemoryStore returns an empty store, or one seeded with data when
// data is non-nil.
func NewMemoryStore(data []byte) *MemoryStore {
	return &MemoryStore{data: data, ok: data != nil}
}

// Load implements Store.
func (m *MemoryStore) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

// Save implements Store.
func (m *MemoryStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.ok = true
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
