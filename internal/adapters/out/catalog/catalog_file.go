// internal/adapters/out/catalog/catalog_file.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

// FileCatalog reads the products.json dataset from disk (the bundled-assets
// variant used by the CLI).
type FileCatalog struct {
	path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (c *FileCatalog) Products(ctx context.Context) ([]proddom.Product, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("catalog_file: read %s: %w", c.path, err)
	}

	var products []proddom.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("catalog_file: decode %s: %w", c.path, err)
	}
	return products, nil
}

func (c *FileCatalog) ByBarcode(ctx context.Context, barcode string) (proddom.Product, error) {
	return findByBarcode(ctx, c, barcode)
}
