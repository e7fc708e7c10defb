// internal/adapters/out/db/order_archive_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
)

// OrderArchivePG keeps a durable copy of every placed order in Postgres.
// It satisfies usecase.OrderExporter.
type OrderArchivePG struct {
	DB *sql.DB
}

func NewOrderArchivePG(db *sql.DB) *OrderArchivePG {
	return &OrderArchivePG{DB: db}
}

// ExportOrder archives the order. Re-exporting the same order id is an
// upsert, so retries are safe.
func (r *OrderArchivePG) ExportOrder(ctx context.Context, o orderdom.Order) error {
	linesJSON, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO orders (
  id, user_id, lines, total, placed_at
) VALUES (
  $1, $2, $3::jsonb, $4, $5
)
ON CONFLICT (id) DO UPDATE SET
  user_id   = EXCLUDED.user_id,
  lines     = EXCLUDED.lines,
  total     = EXCLUDED.total,
  placed_at = EXCLUDED.placed_at
`
	_, err = r.DB.ExecContext(ctx, q,
		strings.TrimSpace(o.ID),
		strings.TrimSpace(o.UserID),
		string(linesJSON),
		o.Total,
		o.PlacedAt.UTC(),
	)
	return err
}

// GetByID loads one archived order.
func (r *OrderArchivePG) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	const q = `
SELECT id, user_id, lines, total, placed_at
FROM orders
WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))

	o, err := scanArchivedOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return o, nil
}

// ListByUser returns the archived orders of one user, newest first.
func (r *OrderArchivePG) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	const q = `
SELECT id, user_id, lines, total, placed_at
FROM orders
WHERE user_id = $1
ORDER BY placed_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, q, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []orderdom.Order
	for rows.Next() {
		o, err := scanArchivedOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArchivedOrder(row rowScanner) (orderdom.Order, error) {
	var (
		o        orderdom.Order
		rawLines []byte
		placedAt time.Time
	)
	if err := row.Scan(&o.ID, &o.UserID, &rawLines, &o.Total, &placedAt); err != nil {
		return orderdom.Order{}, err
	}
	if err := json.Unmarshal(rawLines, &o.Lines); err != nil {
		return orderdom.Order{}, err
	}
	o.PlacedAt = placedAt.UTC()
	return o, nil
}
