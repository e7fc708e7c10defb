// internal/domain/cart/store_port.go
package cart

import "context"

// Store is the persistence port for cart snapshots.
//
// Storage layout (all backends):
// - one record ("the blob") holding cartKey -> Snapshot
// - cartKey: "guest" or a user id (see identity.CartKey)
// - unknown top-level keys are preserved and ignored
// - a malformed entry for one key must not prevent loading another key
//
// Error policy:
// - Load never fails on a missing or corrupt blob; it degrades to an empty
//   snapshot and the adapter logs a recoverable warning. A returned error
//   means the backend itself was unreachable.
// - Save performs a read-modify-write of the whole blob. This is not atomic
//   across processes; last writer wins. Acceptable because the blob is a
//   single-user local cache, not a shared resource (documented limitation
//   for multi-tab style usage).
type Store interface {
	// Load returns the snapshot stored under key, or an empty snapshot.
	Load(ctx context.Context, key string) (Snapshot, error)

	// Save overwrites key's entry with snapshot.
	Save(ctx context.Context, key string, snapshot Snapshot) error

	// Delete removes key's entry entirely (used after a guest merge).
	Delete(ctx context.Context, key string) error
}
