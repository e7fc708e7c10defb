// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
)

// EmailClient abstracts the concrete mail transport (SMTP / SendGrid / SES).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer sends an order confirmation to the operations inbox whenever
// an order is placed. It satisfies usecase.OrderExporter.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

// NewOrderMailer builds the mailer.
//
//   - client      : concrete EmailClient implementation
//   - fromAddress : sender address
//   - toAddress   : operations inbox receiving order notifications
func NewOrderMailer(client EmailClient, fromAddress, toAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		toAddress:   strings.TrimSpace(toAddress),
	}
}

// ExportOrder renders the order as plain text and sends it.
func (m *OrderMailer) ExportOrder(ctx context.Context, o orderdom.Order) error {
	subject := fmt.Sprintf("New order %s", o.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s placed at %s\n", o.ID, o.PlacedAt.Format("2006-01-02 15:04:05 MST"))
	if o.UserID != "" {
		fmt.Fprintf(&b, "User: %s\n", o.UserID)
	}
	b.WriteString("\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "  %-16s %-24s x%-4d %10.2f\n", l.Barcode, l.Name, l.Quantity, l.Subtotal)
	}
	fmt.Fprintf(&b, "\nTotal items: %d\nTotal: %.2f\n", o.TotalQuantity(), o.Total)

	return m.client.Send(ctx, m.fromAddress, m.toAddress, subject, b.String())
}
