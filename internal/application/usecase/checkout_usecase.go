// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

var (
	ErrCheckoutEmptyCart = errors.New("checkout_usecase: cart is empty")
	ErrCheckoutNotLogged = errors.New("checkout_usecase: login required")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// OrderExporter receives a placed order. Implementations write the order
// CSV to disk, upload it to a bucket, archive it to Postgres, or mail a
// confirmation. Exporters are best-effort: a failure is logged and the
// order still goes through.
type OrderExporter interface {
	ExportOrder(ctx context.Context, o orderdom.Order) error
}

// CheckoutUsecase turns the active cart snapshot into a placed order.
type CheckoutUsecase struct {
	engine    *CartEngine
	catalog   proddom.Catalog
	ids       iddom.Provider
	exporters []OrderExporter
	clock     Clock
	newID     func() string
	log       *zap.Logger
}

// NewCheckoutUsecase wires the checkout flow. ids may be nil (checkout is
// then allowed for the guest identity); exporters may be empty.
func NewCheckoutUsecase(engine *CartEngine, catalog proddom.Catalog, ids iddom.Provider, exporters []OrderExporter, log *zap.Logger) *CheckoutUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutUsecase{
		engine:    engine,
		catalog:   catalog,
		ids:       ids,
		exporters: exporters,
		clock:     systemClock{},
		newID:     generateOrderID,
		log:       log,
	}
}

// WithClock pins time for tests.
func (uc *CheckoutUsecase) WithClock(clock Clock) *CheckoutUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// WithIDGenerator pins order id generation for tests.
func (uc *CheckoutUsecase) WithIDGenerator(fn func() string) *CheckoutUsecase {
	if fn != nil {
		uc.newID = fn
	}
	return uc
}

// PlaceOrder prices the active snapshot against the catalog, builds the
// order, runs the exporters and clears the cart.
//
// Cart lines that no longer resolve in the catalog are dropped from the
// order (fail closed, same policy as validation). The cart is cleared only
// after the order is assembled, so a catalog outage aborts the checkout
// with the cart intact.
func (uc *CheckoutUsecase) PlaceOrder(ctx context.Context) (orderdom.Order, error) {
	if uc.ids != nil && !uc.ids.IsAuthenticated() {
		return orderdom.Order{}, ErrCheckoutNotLogged
	}

	snap := uc.engine.Snapshot()
	if snap.IsEmpty() {
		return orderdom.Order{}, ErrCheckoutEmptyCart
	}

	products, err := uc.catalog.Products(ctx)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("checkout_usecase: catalog fetch: %w", err)
	}
	byBarcode := make(map[string]proddom.Product, len(products))
	for _, p := range products {
		byBarcode[strings.TrimSpace(p.Barcode)] = p
	}

	var lines []orderdom.Line
	for barcode, qty := range snap {
		p, ok := byBarcode[barcode]
		if !ok {
			uc.log.Warn("cart line skipped at checkout: product no longer listed",
				zap.String("barcode", barcode))
			continue
		}
		lines = append(lines, orderdom.Line{
			Barcode:     p.Barcode,
			Name:        p.Name,
			Description: p.AdditionalInfo,
			ImageURL:    p.SearchImage,
			Quantity:    qty,
			UnitPrice:   p.Price,
			Subtotal:    p.Price * float64(qty),
		})
	}

	userID := ""
	if uc.ids != nil && uc.ids.IsAuthenticated() {
		userID = uc.ids.Current().UserID
	}

	o, err := orderdom.New(uc.newID(), userID, lines, uc.clock.Now())
	if err != nil {
		return orderdom.Order{}, err
	}

	for _, exp := range uc.exporters {
		if expErr := exp.ExportOrder(ctx, o); expErr != nil {
			uc.log.Warn("order export failed",
				zap.String("orderId", o.ID),
				zap.Error(expErr))
		}
	}

	if err := uc.engine.Clear(ctx); err != nil {
		uc.log.Warn("cart clear after checkout failed",
			zap.String("orderId", o.ID),
			zap.Error(err))
	}

	return o, nil
}

// generateOrderID produces "ORDER-<uuid>".
func generateOrderID() string {
	return "ORDER-" + uuid.NewString()
}
