// internal/adapters/out/storage/blob.go
package storage

import (
	"encoding/json"

	"go.uber.org/zap"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
)

// The persisted store is one JSON blob: cartKey -> (barcode -> qty).
//
// Decoding is deliberately forgiving:
// - an unparsable blob degrades to an empty store (logged, never an error)
// - a malformed entry for one cart key is discarded without touching the
//   others, so a corrupt entry for user A never blocks user B's cart
// - unknown top-level shapes are ignored
//
// Entry-level content (bad barcodes, zero quantities) is NOT filtered here;
// that is the validation layer's job.

// decodeStore parses a raw blob into per-key snapshots.
func decodeStore(raw []byte, log *zap.Logger) map[string]cartdom.Snapshot {
	if log == nil {
		log = zap.NewNop()
	}
	out := map[string]cartdom.Snapshot{}
	if len(raw) == 0 {
		return out
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		log.Warn("cart store blob unparsable; treating as empty", zap.Error(err))
		return out
	}

	for key, entry := range top {
		var snap map[string]int
		if err := json.Unmarshal(entry, &snap); err != nil {
			log.Warn("cart store entry discarded",
				zap.String("cartKey", key),
				zap.Error(err))
			continue
		}
		out[key] = cartdom.Snapshot(snap)
	}
	return out
}

// encodeStore serializes per-key snapshots back into the blob.
func encodeStore(store map[string]cartdom.Snapshot) ([]byte, error) {
	if store == nil {
		store = map[string]cartdom.Snapshot{}
	}
	return json.Marshal(store)
}
