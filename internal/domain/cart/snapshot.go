// internal/domain/cart/snapshot.go
package cart

import "errors"

var ErrInvalidSnapshot = errors.New("cart: invalid snapshot")

// DefaultMaxQuantity is the per-line quantity cap. Quantities above the cap
// are clamped, not rejected; the caller is told so it can surface a notice.
const DefaultMaxQuantity = 100

// Snapshot is the complete barcode -> quantity mapping for one identity at
// one point in time. Order is irrelevant.
//
// Invariants (enforced by Clean and by the mutation helpers):
// - every key is a non-empty trimmed string, not "undefined" / "null"
// - every value is a positive integer <= the configured cap
type Snapshot map[string]int

// NewSnapshot returns an empty snapshot.
func NewSnapshot() Snapshot { return Snapshot{} }

// Clone returns an independent copy. Subscribers only ever see clones;
// the engine keeps sole ownership of the live map.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// TotalItems is the sum of all quantities (the navbar badge count).
func (s Snapshot) TotalItems() int {
	total := 0
	for _, qty := range s {
		total += qty
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (s Snapshot) IsEmpty() bool { return len(s) == 0 }

// Equal reports whether two snapshots hold identical lines.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Add increments barcode by one (or creates it at 1), clamped to max.
// Returns true when the clamp fired.
func (s Snapshot) Add(barcode string, max int) bool {
	return s.SetQty(barcode, s[barcode]+1, max)
}

// SetQty sets barcode to qty, clamped to max. qty <= 0 removes the line.
// Returns true when the clamp fired.
func (s Snapshot) SetQty(barcode string, qty, max int) bool {
	if qty <= 0 {
		delete(s, barcode)
		return false
	}
	clamped, fired := ClampQuantity(qty, max)
	s[barcode] = clamped
	return fired
}

// Remove deletes barcode. Removing an absent line is a no-op, not an error.
func (s Snapshot) Remove(barcode string) {
	delete(s, barcode)
}

// Merge folds src into s, summing quantities line by line and clamping the
// result to max. Lines that end up non-positive are dropped (guards against
// future negative-delta merges; validated inputs never produce them).
// Returns the barcodes whose sum was clamped.
func (s Snapshot) Merge(src Snapshot, max int) []string {
	var capped []string
	for barcode, qty := range src {
		sum := s[barcode] + qty
		if sum <= 0 {
			delete(s, barcode)
			continue
		}
		clamped, fired := ClampQuantity(sum, max)
		s[barcode] = clamped
		if fired {
			capped = append(capped, barcode)
		}
	}
	return capped
}
