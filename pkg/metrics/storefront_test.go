package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStorefrontMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.IncCartMutation("add")
	m.IncCartMutation("add")
	m.IncCartMutation("")
	m.IncOrderPlaced()
	m.IncCouponMiss()

	if got := testutil.ToFloat64(m.cartMutations.WithLabelValues("add")); got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}
	if got := testutil.ToFloat64(m.cartMutations.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}
	if got := testutil.ToFloat64(m.ordersPlaced); got != 1 {
		t.Fatalf("expected orders=1, got %f", got)
	}
	if got := testutil.ToFloat64(m.couponMisses); got != 1 {
		t.Fatalf("expected coupon misses=1, got %f", got)
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.IncCartMutation("add")
	m.IncOrderPlaced()
	m.IncCouponMiss()

	empty := NewStorefrontMetrics(nil)
	empty.IncCartMutation("add")
}
