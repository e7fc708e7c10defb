// internal/domain/product/catalog_port.go
package product

import "context"

// Catalog is the read port for the product dataset.
//
// The cart engine calls Products once per validation pass and builds a
// membership set instead of issuing one ByBarcode lookup per cart entry.
//
// Not-found policy for ByBarcode:
// - return (Product{}, ErrNotFound) when the barcode does not resolve
// - any other error means the catalog itself was unreachable
type Catalog interface {
	// Products returns the full catalog listing.
	Products(ctx context.Context) ([]Product, error)

	// ByBarcode resolves a single product by its barcode.
	ByBarcode(ctx context.Context, barcode string) (Product, error)
}
