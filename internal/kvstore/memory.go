package kvstore

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-memory KV used in tests and as a storage fake.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte

	// FailWrites makes every Write return an error, for quota/IO failure
	// scenarios.
	FailWrites bool
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: map[string][]byte{}}
}

func (m *Memory) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[name]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Write(ctx context.Context, name string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return fmt.Errorf("write %s: storage quota exceeded", name)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[name] = stored
	return nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
