package store

import (
	"context"
	"fmt"
	gosync "sync"
)

// MemoryKV is a map-backed KV used in tests and as a scratch namespace.
// FailWrites and FailReads make every write or read return an error.
type MemoryKV struct {
	mu        gosync.Mutex
	values    map[string]string
	revisions map[string]int64

	FailWrites bool
	FailReads  bool
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values:    make(map[string]string),
		revisions: make(map[string]int64),
	}
}

// GetItem returns the value stored under key.
func (m *MemoryKV) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailReads {
		return "", false, fmt.Errorf("reading key %q: storage unavailable", key)
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// SetItem overwrites the value under key and bumps its revision.
func (m *MemoryKV) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return fmt.Errorf("writing key %q: quota exceeded", key)
	}
	m.values[key] = value
	m.revisions[key]++
	return nil
}

// RemoveItem deletes key and bumps its revision if it existed.
func (m *MemoryKV) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return fmt.Errorf("removing key %q: storage unavailable", key)
	}
	if _, ok := m.values[key]; ok {
		delete(m.values, key)
		m.revisions[key]++
	}
	return nil
}

// Revision returns the write counter of key.
func (m *MemoryKV) Revision(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailReads {
		return 0, fmt.Errorf("reading revision of %q: storage unavailable", key)
	}
	return m.revisions[key], nil
}
