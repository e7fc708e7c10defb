package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
)

type fakeEmailClient struct {
	from, to, subject, body string
	fail                    error
}

func (c *fakeEmailClient) Send(ctx context.Context, from, to, subject, body string) error {
	if c.fail != nil {
		return c.fail
	}
	c.from, c.to, c.subject, c.body = from, to, subject, body
	return nil
}

func testOrder(t *testing.T) orderdom.Order {
	t.Helper()
	o, err := orderdom.New("ORDER-mail", "3", []orderdom.Line{
		{Barcode: "B1", Name: "Sneaker", Quantity: 2, UnitPrice: 100, Subtotal: 200},
	}, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestOrderMailer_SendsConfirmation(t *testing.T) {
	client := &fakeEmailClient{}
	m := NewOrderMailer(client, "no-reply@example.com", "orders@example.com")

	require.NoError(t, m.ExportOrder(context.Background(), testOrder(t)))

	assert.Equal(t, "no-reply@example.com", client.from)
	assert.Equal(t, "orders@example.com", client.to)
	assert.Equal(t, "New order ORDER-mail", client.subject)
	assert.Contains(t, client.body, "B1")
	assert.Contains(t, client.body, "Total: 200.00")
	assert.Contains(t, client.body, "User: 3")
}

func TestOrderMailer_PropagatesClientError(t *testing.T) {
	client := &fakeEmailClient{fail: errors.New("smtp down")}
	m := NewOrderMailer(client, "a@example.com", "b@example.com")

	err := m.ExportOrder(context.Background(), testOrder(t))
	assert.Error(t, err)
}
