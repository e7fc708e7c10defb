package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caerux/e-commerce-website/internal/adapters/out/catalog"
	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingExporter struct {
	orders []orderdom.Order
	fail   error
}

func (e *recordingExporter) ExportOrder(ctx context.Context, o orderdom.Order) error {
	if e.fail != nil {
		return e.fail
	}
	e.orders = append(e.orders, o)
	return nil
}

func checkoutFixture(t *testing.T) (*CheckoutUsecase, *engineFixture, *recordingExporter) {
	t.Helper()
	cat := catalog.NewMemoryCatalog(
		proddom.Product{Barcode: "B1", Name: "Sneaker", Price: 100},
		proddom.Product{Barcode: "B2", Name: "Jeans", Price: 50},
	)
	f := newFixture(t, cat, iddom.User("7"))
	f.start(t)

	exp := &recordingExporter{}
	uc := NewCheckoutUsecase(f.engine, cat, f.ids, []OrderExporter{exp}, nil).
		WithClock(fixedClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}).
		WithIDGenerator(func() string { return "ORDER-test" })
	return uc, f, exp
}

func TestCheckout_PlaceOrder(t *testing.T) {
	uc, f, exp := checkoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.engine.Add(ctx, "B1"))
	require.NoError(t, f.engine.Add(ctx, "B1"))
	require.NoError(t, f.engine.Add(ctx, "B2"))

	o, err := uc.PlaceOrder(ctx)
	require.NoError(t, err)

	assert.Equal(t, "ORDER-test", o.ID)
	assert.Equal(t, "7", o.UserID)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "B1", o.Lines[0].Barcode, "lines sorted by barcode")
	assert.Equal(t, 250.0, o.Total)
	assert.Equal(t, 3, o.TotalQuantity())

	// the cart is cleared after checkout
	assert.True(t, f.engine.Snapshot().IsEmpty())

	require.Len(t, exp.orders, 1)
	assert.Equal(t, "ORDER-test", exp.orders[0].ID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	uc, _, _ := checkoutFixture(t)

	_, err := uc.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
}

func TestCheckout_RequiresLogin(t *testing.T) {
	uc, f, _ := checkoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.engine.Add(ctx, "B1"))
	f.ids.Emit(iddom.Guest())

	_, err := uc.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrCheckoutNotLogged)
}

func TestCheckout_CatalogOutageKeepsCart(t *testing.T) {
	uc, f, _ := checkoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.engine.Add(ctx, "B1"))
	f.catalog.FailWith(catalog.ErrCatalogDown)

	_, err := uc.PlaceOrder(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, f.engine.Quantity("B1"), "cart must survive an aborted checkout")
}

func TestCheckout_ExporterFailureDoesNotBlockOrder(t *testing.T) {
	uc, f, exp := checkoutFixture(t)
	ctx := context.Background()

	exp.fail = errors.New("bucket down")
	require.NoError(t, f.engine.Add(ctx, "B1"))

	o, err := uc.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORDER-test", o.ID)
	assert.True(t, f.engine.Snapshot().IsEmpty())
}

func TestCheckout_DelistedLineDropped(t *testing.T) {
	uc, f, _ := checkoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.engine.Add(ctx, "B1"))
	require.NoError(t, f.engine.Add(ctx, "B2"))

	f.catalog.SetProducts(proddom.Product{Barcode: "B1", Name: "Sneaker", Price: 100})

	o, err := uc.PlaceOrder(ctx)
	require.NoError(t, err)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, "B1", o.Lines[0].Barcode)
}
