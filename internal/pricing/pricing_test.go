package pricing

import (
	"math"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

func testEngine() *Engine {
	return NewEngine(config.PricingConfig{
		FreeShippingThreshold: 50,
		FlatShippingFee:       9.99,
		TaxRate:               0.08,
		GiftWrapFee:           4.99,
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestShippingCost(t *testing.T) {
	t.Parallel()

	engine := testEngine()
	cases := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"empty cart ships free", 0, 0},
		{"below threshold pays flat fee", 30, 9.99},
		{"at threshold still pays", 50, 9.99},
		{"above threshold ships free", 50.01, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.ShippingCost(tc.subtotal); !almostEqual(got, tc.want) {
				t.Fatalf("ShippingCost(%v) = %v, want %v", tc.subtotal, got, tc.want)
			}
		})
	}
}

func TestTax(t *testing.T) {
	t.Parallel()

	engine := testEngine()
	if got := engine.Tax(100); !almostEqual(got, 8) {
		t.Fatalf("Tax(100) = %v, want 8", got)
	}
	if got := engine.Tax(0); got != 0 {
		t.Fatalf("Tax(0) = %v, want 0", got)
	}
}

func TestDiscount(t *testing.T) {
	t.Parallel()

	engine := testEngine()
	percent := &Coupon{Type: enums.DiscountTypePercentage, Value: 0.10}
	fixed := &Coupon{Type: enums.DiscountTypeFixed, Value: 20}

	if got := engine.Discount(99.98, nil); got != 0 {
		t.Fatalf("nil coupon discounted %v", got)
	}
	if got := engine.Discount(99.98, percent); !almostEqual(got, 9.998) {
		t.Fatalf("percentage discount = %v, want 9.998", got)
	}
	if got := engine.Discount(99.98, fixed); !almostEqual(got, 20) {
		t.Fatalf("fixed discount = %v, want 20", got)
	}
	// a fixed coupon larger than the subtotal caps at the subtotal
	if got := engine.Discount(5, fixed); !almostEqual(got, 5) {
		t.Fatalf("oversized fixed discount = %v, want 5", got)
	}
}

func TestOrderTotalFloorsBeforeGiftWrap(t *testing.T) {
	t.Parallel()

	engine := testEngine()

	// discount exceeds everything else; the floor applies first, then wrap
	total := engine.OrderTotal(10, 9.99, 0.8, 100, true)
	if !almostEqual(total, 4.99) {
		t.Fatalf("OrderTotal = %v, want 4.99", total)
	}

	total = engine.OrderTotal(10, 9.99, 0.8, 100, false)
	if total != 0 {
		t.Fatalf("OrderTotal = %v, want 0", total)
	}
}

func TestQuoteForSaveTwentyScenario(t *testing.T) {
	t.Parallel()

	engine := testEngine()
	coupon, err := LookupCoupon("SAVE20")
	if err != nil {
		t.Fatalf("LookupCoupon: %v", err)
	}

	// two pairs of 49.99 shoes: subtotal 99.98, free shipping, 8% tax
	quote := engine.QuoteFor(99.98, coupon, false)

	if !almostEqual(quote.Subtotal, 99.98) {
		t.Fatalf("subtotal = %v", quote.Subtotal)
	}
	if quote.Shipping != 0 {
		t.Fatalf("shipping = %v, want 0", quote.Shipping)
	}
	if !almostEqual(quote.Tax, 8.00) {
		t.Fatalf("tax = %v, want 8.00", quote.Tax)
	}
	if !almostEqual(quote.Discount, 20) {
		t.Fatalf("discount = %v, want 20", quote.Discount)
	}
	if !almostEqual(quote.Total, 87.98) {
		t.Fatalf("total = %v, want 87.98", quote.Total)
	}
}

func TestQuoteForEmptyCart(t *testing.T) {
	t.Parallel()

	quote := testEngine().QuoteFor(0, nil, false)
	if quote.Total != 0 || quote.Shipping != 0 || quote.Tax != 0 {
		t.Fatalf("empty cart quote not zero: %+v", quote)
	}
}

func TestLookupCoupon(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"WELCOME10", "FREESHIP", "SAVE20"} {
		coupon, err := LookupCoupon(code)
		if err != nil {
			t.Fatalf("LookupCoupon(%s): %v", code, err)
		}
		if coupon.Code != code {
			t.Fatalf("LookupCoupon(%s) returned %+v", code, coupon)
		}
	}

	for _, code := range []string{"", "welcome10", "NOPE", " SAVE20"} {
		if _, err := LookupCoupon(code); err == nil {
			t.Fatalf("LookupCoupon(%q) unexpectedly succeeded", code)
		}
	}
}
