package prefs

import (
	"context"
	"sync"
)

// MemoryKV keeps values in process memory. Used by the memory driver and tests.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]map[string][]byte{}}
}

func (m *MemoryKV) Get(_ context.Context, workspace, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[workspace][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(_ context.Context, workspace, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.values[workspace]
	if !ok {
		ws = map[string][]byte{}
		m.values[workspace] = ws
	}
	ws[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, workspace string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.values[workspace]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(ws, k)
	}
	if len(ws) == 0 {
		delete(m.values, workspace)
	}
	return nil
}
