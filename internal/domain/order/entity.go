// internal/domain/order/entity.go
package order

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrEmptyOrder = errors.New("order: empty")
	ErrInvalid    = errors.New("order: invalid")
	ErrNotFound   = errors.New("order: not found")
)

// Line is one priced order position, resolved from a cart line against the
// catalog at checkout time.
type Line struct {
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is a placed order: the priced snapshot of a cart at checkout.
type Order struct {
	ID       string    `json:"orderId"`
	UserID   string    `json:"userId,omitempty"`
	Lines    []Line    `json:"items"`
	Total    float64   `json:"total"`
	PlacedAt time.Time `json:"orderDate"`
}

// New assembles an order from priced lines. Lines are sorted by barcode so
// exports are deterministic regardless of snapshot iteration order.
func New(id, userID string, lines []Line, placedAt time.Time) (Order, error) {
	if id == "" {
		return Order{}, ErrInvalid
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyOrder
	}

	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Barcode < sorted[j].Barcode })

	total := 0.0
	for _, l := range sorted {
		total += l.Subtotal
	}

	return Order{
		ID:       id,
		UserID:   userID,
		Lines:    sorted,
		Total:    total,
		PlacedAt: placedAt,
	}, nil
}

// TotalQuantity sums the quantities across all lines (the CSV summary row).
func (o Order) TotalQuantity() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}
