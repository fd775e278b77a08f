package storage

import (
	"context"
	"sync"
)

// Memory is an in-process [Medium]. It backs the transient (session-scoped)
// storage in normal use and substitutes for the durable medium in tests.
//
// The zero value is not usable; construct with [NewMemory].
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-process medium.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

// Get implements [Medium].
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements [Medium].
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Delete implements [Medium].
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Len reports the number of stored keys. Test helper surface.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.values)
}
