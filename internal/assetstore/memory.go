package assetstore

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory asset store used in tests.
type Memory struct {
	mu       sync.Mutex
	payloads map[string][]byte
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory asset store.
func NewMemory() *Memory {
	return &Memory{payloads: map[string][]byte{}}
}

func (m *Memory) Put(ctx context.Context, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := Key(payload)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payloads[key]; !ok {
		stored := make([]byte, len(payload))
		copy(stored, payload)
		m.payloads[key] = stored
	}
	return key, nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.payloads[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payloads, key)
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = map[string][]byte{}
	return nil
}

func (m *Memory) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.payloads))
	for key := range m.payloads {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
