package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
)

func sampleOrder(t *testing.T) orderdom.Order {
	t.Helper()
	o, err := orderdom.New("ORDER-test", "7", []orderdom.Line{
		{Barcode: "B2", Name: "Jeans", Quantity: 3, UnitPrice: 49.5, Subtotal: 148.5},
		{Barcode: "B1", Name: "Sneaker", Quantity: 2, UnitPrice: 100, Subtotal: 200},
	}, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestWriteOrderCSV_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrderCSV(&buf, sampleOrder(t)))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "order_csv", buf.Bytes())
}

func TestCSVFileExporter_WritesOrderFile(t *testing.T) {
	dir := t.TempDir()
	exp := NewCSVFileExporter(filepath.Join(dir, "orders"), nil)

	o := sampleOrder(t)
	require.NoError(t, exp.ExportOrder(context.Background(), o))

	raw, err := os.ReadFile(filepath.Join(dir, "orders", "ORDER-test.csv"))
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, WriteOrderCSV(&want, o))
	assert.Equal(t, want.String(), string(raw))
}
