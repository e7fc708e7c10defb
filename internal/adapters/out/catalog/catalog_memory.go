// internal/adapters/out/catalog/catalog_memory.go
package catalog

import (
	"context"
	"errors"
	"sync"

	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

// MemoryCatalog serves a fixed product list. Test double; also handy for
// offline demos. FailWith makes every call fail, for exercising the
// fail-closed validation path.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []proddom.Product
	failWith error
	calls    int
}

func NewMemoryCatalog(products ...proddom.Product) *MemoryCatalog {
	return &MemoryCatalog{products: products}
}

func (c *MemoryCatalog) Products(ctx context.Context) ([]proddom.Product, error) {
	c.mu.Lock()
	c.calls++
	fail := c.failWith
	out := make([]proddom.Product, len(c.products))
	copy(out, c.products)
	c.mu.Unlock()

	if fail != nil {
		return nil, fail
	}
	return out, nil
}

func (c *MemoryCatalog) ByBarcode(ctx context.Context, barcode string) (proddom.Product, error) {
	return findByBarcode(ctx, c, barcode)
}

// SetProducts replaces the listing (simulates catalog changes mid-session).
func (c *MemoryCatalog) SetProducts(products ...proddom.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
}

// FailWith makes subsequent calls fail with err (nil restores service).
func (c *MemoryCatalog) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failWith = err
}

// Calls reports how many Products fetches were issued.
func (c *MemoryCatalog) Calls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls
}

// ErrCatalogDown is a ready-made failure for tests.
var ErrCatalogDown = errors.New("catalog unavailable")
