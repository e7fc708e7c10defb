// internal/adapters/out/storage/store_fs.go
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
)

// FirestoreCartStore implements cart.Store on Firestore.
//
// Collection design:
// - collection: carts
// - docId: cartKey ("guest" or user id) — docId is the source of truth
// - fields: items (barcode -> qty), updatedAt
//
// Each cart key gets its own document, so a corrupt document for one key
// never affects another key's load.
type FirestoreCartStore struct {
	Client *firestore.Client
	log    *zap.Logger
}

func NewFirestoreCartStore(client *firestore.Client, log *zap.Logger) *FirestoreCartStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FirestoreCartStore{Client: client, log: log}
}

func (r *FirestoreCartStore) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// Load returns an empty snapshot for missing docs (nil policy at the doc
// level) and parses items field-by-field so a schema drift in one line
// never fails the whole document.
func (r *FirestoreCartStore) Load(ctx context.Context, key string) (cartdom.Snapshot, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("firestore_cart_store: client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("firestore_cart_store: key is empty")
	}

	snap, err := r.col().Doc(k).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return cartdom.NewSnapshot(), nil
		}
		return nil, err
	}

	return itemsFromDoc(snap.Data(), k, r.log), nil
}

func (r *FirestoreCartStore) Save(ctx context.Context, key string, snapshot cartdom.Snapshot) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore_cart_store: client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("firestore_cart_store: key is empty")
	}

	items := map[string]int{}
	for barcode, qty := range snapshot {
		items[barcode] = qty
	}

	// Overwrite full doc (simple & predictable).
	_, err := r.col().Doc(k).Set(ctx, map[string]any{
		"items":     items,
		"updatedAt": time.Now().UTC(),
	})
	return err
}

func (r *FirestoreCartStore) Delete(ctx context.Context, key string) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore_cart_store: client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("firestore_cart_store: key is empty")
	}

	_, err := r.col().Doc(k).Delete(ctx)
	return err
}

// itemsFromDoc parses the items field with backward compatibility.
// Firestore hands back int64 for integer fields; anything else for a line
// is discarded individually.
func itemsFromDoc(raw map[string]any, key string, log *zap.Logger) cartdom.Snapshot {
	out := cartdom.NewSnapshot()
	if raw == nil {
		return out
	}

	itemsAny, ok := raw["items"]
	if !ok {
		return out
	}
	m, ok := itemsAny.(map[string]any)
	if !ok {
		log.Warn("cart doc items field has unexpected shape; treating as empty",
			zap.String("cartKey", key))
		return out
	}

	for barcode, v := range m {
		switch qty := v.(type) {
		case int64:
			out[barcode] = int(qty)
		case float64:
			out[barcode] = int(qty)
		default:
			log.Warn("cart doc line discarded",
				zap.String("cartKey", key),
				zap.String("barcode", barcode))
		}
	}
	return out
}
