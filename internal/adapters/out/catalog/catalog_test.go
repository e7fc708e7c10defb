package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

const productsJSON = `[
  {"barcode": "10017413", "name": "Sneaker", "brand": "Puma", "price": 8999},
  {"barcode": "10016283", "name": "Jeans", "brand": "Roadster", "price": 1499}
]`

func TestHTTPCatalog_Products(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsJSON))
	}))
	defer srv.Close()

	c := NewHTTPCatalog(srv.URL, srv.Client())
	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "10017413", products[0].Barcode)
}

func TestHTTPCatalog_ByBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(productsJSON))
	}))
	defer srv.Close()

	c := NewHTTPCatalog(srv.URL, srv.Client())

	p, err := c.ByBarcode(context.Background(), "10016283")
	require.NoError(t, err)
	assert.Equal(t, "Jeans", p.Name)

	_, err = c.ByBarcode(context.Background(), "nope")
	assert.ErrorIs(t, err, proddom.ErrNotFound)

	_, err = c.ByBarcode(context.Background(), "  ")
	assert.ErrorIs(t, err, proddom.ErrNotFound)
}

func TestHTTPCatalog_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPCatalog(srv.URL, srv.Client())
	_, err := c.Products(context.Background())
	assert.Error(t, err)
}

func TestFileCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(productsJSON), 0o644))

	c := NewFileCatalog(path)
	products, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	p, err := c.ByBarcode(context.Background(), "10017413")
	require.NoError(t, err)
	assert.Equal(t, "Sneaker", p.Name)
}

func TestFileCatalog_MissingFile(t *testing.T) {
	c := NewFileCatalog(filepath.Join(t.TempDir(), "absent.json"))
	_, err := c.Products(context.Background())
	assert.Error(t, err)
}

func TestMemoryCatalog_FailWith(t *testing.T) {
	c := NewMemoryCatalog(proddom.Product{Barcode: "A"})
	c.FailWith(ErrCatalogDown)

	_, err := c.Products(context.Background())
	assert.ErrorIs(t, err, ErrCatalogDown)

	c.FailWith(nil)
	products, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
