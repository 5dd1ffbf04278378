package kv

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. It never fails and keeps nothing across
// process restarts; it exists for tests and STORE_DRIVER=memory dev runs.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]byte)}
}

// Get returns a copy of the stored document, so callers can never mutate the
// store's internal buffer.
func (m *Memory) Get(_ context.Context, name string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.collections[name]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Put stores a copy of data under name, replacing any previous document.
func (m *Memory) Put(_ context.Context, name string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.collections[name] = buf
	m.mu.Unlock()
	return nil
}

// Delete removes the collection; deleting an absent collection is a no-op.
func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.collections, name)
	m.mu.Unlock()
	return nil
}
