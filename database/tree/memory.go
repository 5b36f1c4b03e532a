// File: database/tree/memory.go
package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryTree is an in-process Tree.
type MemoryTree struct {
	mu    sync.RWMutex
	nodes map[string]map[string]json.RawMessage
}

func NewMemoryTree() *MemoryTree {
	return &MemoryTree{nodes: make(map[string]map[string]json.RawMessage)}
}

func (m *MemoryTree) Children(_ context.Context, path string) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(m.nodes[path]))
	for k, v := range m.nodes[path] {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out, nil
}

func (m *MemoryTree) SetChild(_ context.Context, path, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", path, key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(path, key, raw)
	return nil
}

func (m *MemoryTree) DeleteChild(_ context.Context, path, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delete(path, key)
	return nil
}

func (m *MemoryTree) UpdateChildren(_ context.Context, path string, values map[string]interface{}) error {
	encoded := make(map[string]json.RawMessage, len(values))
	for key, v := range values {
		if v == nil {
			encoded[key] = nil
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s/%s: %w", path, key, err)
		}
		encoded[key] = raw
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, raw := range encoded {
		if raw == nil {
			m.delete(path, key)
		} else {
			m.set(path, key, raw)
		}
	}
	return nil
}

func (m *MemoryTree) set(path, key string, raw json.RawMessage) {
	children, ok := m.nodes[path]
	if !ok {
		children = make(map[string]json.RawMessage)
		m.nodes[path] = children
	}
	children[key] = raw
}

func (m *MemoryTree) delete(path, key string) {
	delete(m.nodes[path], key)
	if len(m.nodes[path]) == 0 {
		delete(m.nodes, path)
	}
}
