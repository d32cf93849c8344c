package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/travelbook/internal/domain"
)

// memoryKV keeps everything in a map. It backs STORAGE_BACKEND=memory and
// the service tests.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() KV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("repo.memoryKV.Get %q: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryKV) Write(_ context.Context, b Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range b.Puts {
		m.data[k] = append([]byte(nil), v...)
	}
	for _, k := range b.Deletes {
		delete(m.data, k)
	}
	return nil
}

