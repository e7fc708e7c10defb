// internal/infra/telemetry/cart_metrics.go
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Cart metrics — global, bounded label cardinality only (operation names and
// drop reasons, never barcodes).
var (
	cartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Total cart mutations by operation (add, remove, set, clear)",
	}, []string{"op"})

	cartValidationDropsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_validation_drops_total",
		Help: "Cart lines removed by validation, by reason",
	}, []string{"reason"})

	cartClampsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_quantity_clamps_total",
		Help: "Quantity mutations clamped to the configured cap",
	})

	cartMergesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_merges_total",
		Help: "Guest-to-user cart merges performed on login",
	})

	cartItemsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_items",
		Help: "Total item count of the active cart snapshot",
	})
)

func init() {
	// Register eagerly. If no /metrics endpoint is exposed the registration
	// is harmless.
	prometheus.MustRegister(
		cartMutationsTotal,
		cartValidationDropsTotal,
		cartClampsTotal,
		cartMergesTotal,
		cartItemsGauge,
	)
}

// ObserveCartMutation records one mutation entry-point call.
func ObserveCartMutation(op string) { cartMutationsTotal.WithLabelValues(op).Inc() }

// ObserveValidationDrop records one line removed during a validation pass.
func ObserveValidationDrop(reason string) { cartValidationDropsTotal.WithLabelValues(reason).Inc() }

// ObserveClamp records one quantity clamp.
func ObserveClamp() { cartClampsTotal.Inc() }

// ObserveMerge records one guest->user merge.
func ObserveMerge() { cartMergesTotal.Inc() }

// SetCartItems publishes the active snapshot's total item count.
func SetCartItems(n int) { cartItemsGauge.Set(float64(n)) }
