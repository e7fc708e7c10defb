// internal/domain/cart/validate.go
package cart

import "strings"

// DropReason classifies why Clean removed a cart line.
type DropReason string

const (
	DropBadBarcode     DropReason = "invalid barcode"
	DropBadQuantity    DropReason = "invalid quantity"
	DropUnknownProduct DropReason = "unknown product"
)

// ValidBarcode is the barcode-validity predicate shared by every code path
// that accepts an identifier from outside (persisted blobs, CSV rows, API
// calls). Serialization bugs in older revisions wrote the literal tokens
// "undefined" / "null" as keys, so those are rejected explicitly.
func ValidBarcode(barcode string) bool {
	bc := strings.TrimSpace(barcode)
	if bc == "" {
		return false
	}
	if bc == "undefined" || bc == "null" {
		return false
	}
	return true
}

// ValidQuantity reports whether qty is usable as a cart line quantity.
func ValidQuantity(qty int) bool { return qty > 0 }

// ClampQuantity caps qty at max and reports whether clamping occurred.
// max <= 0 falls back to DefaultMaxQuantity.
func ClampQuantity(qty, max int) (int, bool) {
	if max <= 0 {
		max = DefaultMaxQuantity
	}
	if qty > max {
		return max, true
	}
	return qty, false
}

// Clean returns a snapshot holding only the lines that pass validation
// against the given catalog membership set. The input is not modified.
//
// Dropped lines are reported through onDrop (barcode + reason) so the
// caller can log them; validation failure is silent self-healing, never a
// user-facing error. onDrop may be nil.
//
// Clean is idempotent: Clean(Clean(s)) == Clean(s) for a fixed set.
func Clean(s Snapshot, known map[string]struct{}, onDrop func(barcode string, reason DropReason)) Snapshot {
	out := make(Snapshot, len(s))
	report := onDrop
	if report == nil {
		report = func(string, DropReason) {}
	}

	for barcode, qty := range s {
		if !ValidBarcode(barcode) {
			report(barcode, DropBadBarcode)
			continue
		}
		if !ValidQuantity(qty) {
			report(barcode, DropBadQuantity)
			continue
		}
		if _, ok := known[strings.TrimSpace(barcode)]; !ok {
			report(barcode, DropUnknownProduct)
			continue
		}
		out[strings.TrimSpace(barcode)] = qty
	}
	return out
}
