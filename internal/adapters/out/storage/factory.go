// internal/adapters/out/storage/factory.go
package storage

import (
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
)

// FactoryOptions carries the backend-specific settings BuildCartStore may
// need. Only the fields for the selected backend are consulted.
type FactoryOptions struct {
	// FilePath is the blob location for the "file" backend.
	FilePath string
	// RedisAddr is host:port for the "redis" backend. Redis takes
	// precedence over RedisAddr when both are set.
	RedisAddr string
	// Redis is an already connected client for the "redis" backend.
	Redis *redis.Client
	// Firestore is the shared client for the "firestore" backend.
	Firestore *firestore.Client
	// Logger is handed to the adapter. nil is fine.
	Logger *zap.Logger
}

// BuildCartStore constructs a cart.Store from a string selector.
// Supported backends:
//   - "memory": in-process store (default; no persistence across runs)
//   - "file": one JSON blob on disk — the local-storage analogue
//   - "firestore": one doc per cart key in the carts collection
//   - "redis": one hash per cart key
func BuildCartStore(backend string, opts FactoryOptions) (cartdom.Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryCartStore(), nil
	case "file":
		path := opts.FilePath
		if path == "" {
			path = "storefront-carts.json"
		}
		return NewFileCartStore(path, opts.Logger), nil
	case "firestore":
		if opts.Firestore == nil {
			return nil, errors.New("firestore backend selected but no client configured")
		}
		return NewFirestoreCartStore(opts.Firestore, opts.Logger), nil
	case "redis":
		if opts.Redis != nil {
			return NewRedisCartStoreWithClient(opts.Redis, opts.Logger), nil
		}
		if opts.RedisAddr == "" {
			return nil, errors.New("redis backend selected but no address configured")
		}
		return NewRedisCartStore(opts.RedisAddr, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unknown cart store backend: %s", backend)
	}
}
