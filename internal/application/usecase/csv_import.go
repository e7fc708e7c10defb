// internal/application/usecase/csv_import.go
package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

var (
	ErrCSVBadHeaders = errors.New("csv_import: missing barcode/quantity columns")
	ErrCSVUnparsable = errors.New("csv_import: unparsable file")
)

// RowError describes one rejected CSV row. The raw cell values are kept as
// strings so the caller can echo exactly what the file said.
type RowError struct {
	Row      int
	Barcode  string
	Quantity string
	Message  string
}

// ImportResult is the outcome of one bulk import.
//
// All-or-nothing: when Errors is non-empty the cart was not touched and
// Lines/Total are zero. On success Lines carries the priced preview of
// what entered the cart.
type ImportResult struct {
	Lines  []orderdom.Line
	Total  float64
	Errors []RowError
}

// Ok reports whether the import populated the cart.
func (r ImportResult) Ok() bool { return len(r.Errors) == 0 && len(r.Lines) > 0 }

// CSVImporter bulk-populates the cart from a barcode,quantity CSV file.
type CSVImporter struct {
	engine  *CartEngine
	catalog proddom.Catalog
	log     *zap.Logger
}

func NewCSVImporter(engine *CartEngine, catalog proddom.Catalog, log *zap.Logger) *CSVImporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSVImporter{engine: engine, catalog: catalog, log: log}
}

// Import parses r, validates every row, and only then mutates the cart.
//
// Header validation: a "barcode" and a "quantity" column must exist
// (case-insensitive, any order, extra columns ignored). Row validation:
// non-empty barcode, positive integer quantity, product resolvable in the
// catalog. Any row error aborts the import with the collected errors;
// ErrCSVBadHeaders / ErrCSVUnparsable cover file-level failures.
//
// The catalog is fetched once for the whole file, not once per row.
func (i *CSVImporter) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrCSVUnparsable, err)
	}
	if len(records) == 0 {
		return ImportResult{}, ErrCSVBadHeaders
	}

	barcodeCol, qtyCol, ok := resolveColumns(records[0])
	if !ok {
		return ImportResult{}, ErrCSVBadHeaders
	}

	// One catalog fetch resolves every row.
	byBarcode, err := i.productIndex(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("csv_import: catalog fetch: %w", err)
	}

	type importRow struct {
		product  proddom.Product
		quantity int
	}

	var (
		rows    []importRow
		rowErrs []RowError
	)

	for n, record := range records[1:] {
		rowNumber := n + 1

		rawBarcode := cell(record, barcodeCol)
		rawQty := cell(record, qtyCol)

		barcode := strings.TrimSpace(rawBarcode)
		qty, qtyErr := strconv.Atoi(strings.TrimSpace(rawQty))

		switch {
		case !cartdom.ValidBarcode(barcode):
			rowErrs = append(rowErrs, RowError{rowNumber, rawBarcode, rawQty, "Empty barcode."})
		case qtyErr != nil || qty <= 0:
			rowErrs = append(rowErrs, RowError{rowNumber, rawBarcode, rawQty, "Invalid quantity."})
		default:
			p, found := byBarcode[barcode]
			if !found {
				rowErrs = append(rowErrs, RowError{rowNumber, rawBarcode, rawQty,
					fmt.Sprintf("Product with barcode %q not found.", barcode)})
				break
			}
			rows = append(rows, importRow{product: p, quantity: qty})
		}
	}

	if len(rowErrs) > 0 {
		// Errors anywhere mean the cart is not touched at all.
		i.log.Warn("csv import rejected", zap.Int("rows", len(records)-1), zap.Int("errors", len(rowErrs)))
		return ImportResult{Errors: rowErrs}, nil
	}

	result := ImportResult{}
	for _, row := range rows {
		// Add registers the line, SetQuantity pins it to the CSV value
		// (a duplicate barcode later in the file wins).
		if err := i.engine.Add(ctx, row.product.Barcode); err != nil {
			return ImportResult{}, fmt.Errorf("csv_import: add %s: %w", row.product.Barcode, err)
		}
		if err := i.engine.SetQuantity(ctx, row.product.Barcode, row.quantity); err != nil {
			return ImportResult{}, fmt.Errorf("csv_import: set %s: %w", row.product.Barcode, err)
		}

		stored := i.engine.Quantity(row.product.Barcode)
		line := orderdom.Line{
			Barcode:     row.product.Barcode,
			Name:        row.product.Name,
			Description: row.product.AdditionalInfo,
			ImageURL:    row.product.SearchImage,
			Quantity:    stored,
			UnitPrice:   row.product.Price,
			Subtotal:    row.product.Price * float64(stored),
		}
		result.Lines = append(result.Lines, line)
		result.Total += line.Subtotal
	}

	return result, nil
}

func (i *CSVImporter) productIndex(ctx context.Context) (map[string]proddom.Product, error) {
	products, err := i.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]proddom.Product, len(products))
	for _, p := range products {
		bc := strings.TrimSpace(p.Barcode)
		if bc == "" {
			continue
		}
		idx[bc] = p
	}
	return idx, nil
}

// resolveColumns finds the barcode and quantity column indexes.
func resolveColumns(header []string) (barcode, qty int, ok bool) {
	barcode, qty = -1, -1
	for idx, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "barcode":
			barcode = idx
		case "quantity":
			qty = idx
		}
	}
	return barcode, qty, barcode >= 0 && qty >= 0
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
