// internal/adapters/out/storage/store_file.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
)

// FileCartStore persists the store blob as one JSON file on disk — the
// local-storage analogue for the CLI storefront.
//
// Save/Delete are read-modify-write over the whole blob. Writes within one
// process serialize on the mutex; across processes the last writer wins,
// which is acceptable for a single-user local cache.
type FileCartStore struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewFileCartStore(path string, log *zap.Logger) *FileCartStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileCartStore{path: path, log: log}
}

func (f *FileCartStore) Load(ctx context.Context, key string) (cartdom.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	store := f.readLocked()
	snap, ok := store[key]
	if !ok {
		return cartdom.NewSnapshot(), nil
	}
	return snap.Clone(), nil
}

func (f *FileCartStore) Save(ctx context.Context, key string, snapshot cartdom.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	store := f.readLocked()
	store[key] = snapshot.Clone()
	return f.writeLocked(store)
}

func (f *FileCartStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	store := f.readLocked()
	if _, ok := store[key]; !ok {
		return nil
	}
	delete(store, key)
	return f.writeLocked(store)
}

// readLocked loads and decodes the blob. A missing file is an empty store;
// a corrupt file is logged and treated as empty (recovered, not raised).
func (f *FileCartStore) readLocked() map[string]cartdom.Snapshot {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn("cart store file unreadable; treating as empty",
				zap.String("path", f.path),
				zap.Error(err))
		}
		return map[string]cartdom.Snapshot{}
	}
	return decodeStore(raw, f.log)
}

func (f *FileCartStore) writeLocked(store map[string]cartdom.Snapshot) error {
	raw, err := encodeStore(store)
	if err != nil {
		return fmt.Errorf("file_cart_store: encode: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("file_cart_store: mkdir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return fmt.Errorf("file_cart_store: write: %w", err)
	}
	return nil
}
