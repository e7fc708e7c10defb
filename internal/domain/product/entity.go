// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("product: not found")

// Product mirrors one entry of the storefront catalog dataset (products.json).
// Barcode is the catalog-wide identifier; every cart entry is keyed by it.
type Product struct {
	Barcode        string  `json:"barcode"`
	Name           string  `json:"name"`
	Brand          string  `json:"brand"`
	Category       string  `json:"category"`
	Gender         string  `json:"gender"`
	Color          string  `json:"color"`
	Price          float64 `json:"price"`
	AdditionalInfo string  `json:"additionalInfo"`
	SearchImage    string  `json:"searchImage"`
}

// Valid reports whether the product can be referenced from a cart.
func (p Product) Valid() bool {
	return strings.TrimSpace(p.Barcode) != ""
}

// BarcodeSet builds a membership set from a catalog listing.
// Blank barcodes are skipped so a malformed catalog row never
// validates a malformed cart entry.
func BarcodeSet(products []Product) map[string]struct{} {
	set := make(map[string]struct{}, len(products))
	for _, p := range products {
		bc := strings.TrimSpace(p.Barcode)
		if bc == "" {
			continue
		}
		set[bc] = struct{}{}
	}
	return set
}
