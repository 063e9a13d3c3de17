package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records the shopping operations the API serves.
type StorefrontMetrics struct {
	cartMutations *prometheus.CounterVec
	ordersPlaced  prometheus.Counter
	couponMisses  prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"op"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders handed to the placement collaborator.",
	})
	couponMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coupon_lookup_misses_total",
		Help: "Coupon codes that failed exact-match lookup.",
	})
	reg.MustRegister(cartMutations, ordersPlaced, couponMisses)
	return &StorefrontMetrics{
		cartMutations: cartMutations,
		ordersPlaced:  ordersPlaced,
		couponMisses:  couponMisses,
	}
}

// IncCartMutation increments the counter for the named operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncOrderPlaced increments the placed-order counter.
func (m *StorefrontMetrics) IncOrderPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// IncCouponMiss increments the failed coupon lookup counter.
func (m *StorefrontMetrics) IncCouponMiss() {
	if m == nil || m.couponMisses == nil {
		return
	}
	m.couponMisses.Inc()
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
