// internal/adapters/out/catalog/catalog_http.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

// HTTPCatalog fetches the static products.json dataset over HTTP, the same
// way the storefront frontend loads its assets. Every Products call is a
// fresh fetch; callers that validate carts build a membership set from one
// call instead of hammering ByBarcode.
type HTTPCatalog struct {
	url    string
	client *http.Client
}

func NewHTTPCatalog(url string, client *http.Client) *HTTPCatalog {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPCatalog{url: url, client: client}
}

func (c *HTTPCatalog) Products(ctx context.Context) ([]proddom.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog_http: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog_http: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog_http: unexpected status %d", resp.StatusCode)
	}

	var products []proddom.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("catalog_http: decode: %w", err)
	}
	return products, nil
}

func (c *HTTPCatalog) ByBarcode(ctx context.Context, barcode string) (proddom.Product, error) {
	return findByBarcode(ctx, c, barcode)
}

// findByBarcode resolves one barcode through a full listing. Shared by the
// catalog adapters; none of the backing datasets support point lookups.
func findByBarcode(ctx context.Context, cat proddom.Catalog, barcode string) (proddom.Product, error) {
	bc := strings.TrimSpace(barcode)
	if bc == "" {
		return proddom.Product{}, proddom.ErrNotFound
	}

	products, err := cat.Products(ctx)
	if err != nil {
		return proddom.Product{}, err
	}
	for _, p := range products {
		if strings.TrimSpace(p.Barcode) == bc {
			return p, nil
		}
	}
	return proddom.Product{}, proddom.ErrNotFound
}
