// internal/adapters/out/storage/store_memory.go
package storage

import (
	"context"
	"sync"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
)

// MemoryCartStore keeps the persisted store in process memory.
// Used by tests and by ephemeral CLI sessions.
type MemoryCartStore struct {
	mu    sync.RWMutex
	store map[string]cartdom.Snapshot
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{store: map[string]cartdom.Snapshot{}}
}

func (m *MemoryCartStore) Load(ctx context.Context, key string) (cartdom.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.store[key]
	if !ok {
		return cartdom.NewSnapshot(), nil
	}
	return snap.Clone(), nil
}

func (m *MemoryCartStore) Save(ctx context.Context, key string, snapshot cartdom.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = snapshot.Clone()
	return nil
}

func (m *MemoryCartStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

// Keys lists the stored cart keys (test helper).
func (m *MemoryCartStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.store))
	for k := range m.store {
		keys = append(keys, k)
	}
	return keys
}
