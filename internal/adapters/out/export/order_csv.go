// internal/adapters/out/export/order_csv.go
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
)

// WriteOrderCSV renders an order as the downloadable summary file:
// one row per line, prices with two decimals, and a trailing total row.
func WriteOrderCSV(w io.Writer, o orderdom.Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Product Barcode", "Product Name", "Quantity", "Unit Price", "Subtotal"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, l := range o.Lines {
		row := []string{
			l.Barcode,
			l.Name,
			strconv.Itoa(l.Quantity),
			fmt.Sprintf("%.2f", l.UnitPrice),
			fmt.Sprintf("%.2f", l.Subtotal),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write line %s: %w", l.Barcode, err)
		}
	}

	summary := []string{"", "Total", strconv.Itoa(o.TotalQuantity()), "", fmt.Sprintf("%.2f", o.Total)}
	if err := cw.Write(summary); err != nil {
		return fmt.Errorf("export: write summary: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// ─────────────────────────────────
// File exporter
// ─────────────────────────────────

// CSVFileExporter writes each placed order as "<orderId>.csv" under Dir.
type CSVFileExporter struct {
	dir string
	log *zap.Logger
}

func NewCSVFileExporter(dir string, log *zap.Logger) *CSVFileExporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSVFileExporter{dir: dir, log: log}
}

func (e *CSVFileExporter) ExportOrder(ctx context.Context, o orderdom.Order) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", e.dir, err)
	}

	path := filepath.Join(e.dir, o.ID+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}

	if err := WriteOrderCSV(f, o); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}

	e.log.Info("order csv written",
		zap.String("orderId", o.ID),
		zap.String("path", path))
	return nil
}
