// Package pricing derives the money figures for a cart: shipping, tax,
// coupon discounts and the final order total. Every function here is a pure
// computation over a subtotal so the cart store and the checkout flow share
// one source of truth for the math.
package pricing

import (
	"math"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// Quote is the full price breakdown for a cart at a point in time. All
// fields are rounded to two decimals for display.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	GiftWrap float64 `json:"giftWrap"`
	Total    float64 `json:"total"`
}

// Engine computes price components from the configured constants.
type Engine struct {
	cfg config.PricingConfig
}

func NewEngine(cfg config.PricingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// ShippingCost returns the shipping fee for the given subtotal. An empty
// cart ships for free, and so does anything above the free-shipping
// threshold. The threshold itself does not qualify.
func (e *Engine) ShippingCost(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	if subtotal > e.cfg.FreeShippingThreshold {
		return 0
	}
	return e.cfg.FlatShippingFee
}

// Tax returns the tax owed on the subtotal. Shipping is not taxed.
func (e *Engine) Tax(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	return subtotal * e.cfg.TaxRate
}

// Discount returns the amount a coupon takes off the subtotal. A nil coupon
// discounts nothing. Fixed coupons never discount more than the subtotal
// itself.
func (e *Engine) Discount(subtotal float64, coupon *Coupon) float64 {
	if coupon == nil || subtotal <= 0 {
		return 0
	}
	switch coupon.Type {
	case enums.DiscountTypePercentage:
		return subtotal * coupon.Value
	case enums.DiscountTypeFixed:
		return math.Min(coupon.Value, subtotal)
	default:
		return 0
	}
}

// OrderTotal combines the components into the amount charged. The discount
// is applied before the gift wrap fee and can never push the pre-wrap amount
// below zero, so a large coupon does not make gift wrap free.
func (e *Engine) OrderTotal(subtotal, shipping, tax, discount float64, giftWrap bool) float64 {
	total := math.Max(0, subtotal+shipping+tax-discount)
	if giftWrap {
		total += e.cfg.GiftWrapFee
	}
	return total
}

// QuoteFor prices a subtotal end to end and rounds each component for
// display.
func (e *Engine) QuoteFor(subtotal float64, coupon *Coupon, giftWrap bool) Quote {
	shipping := e.ShippingCost(subtotal)
	tax := e.Tax(subtotal)
	discount := e.Discount(subtotal, coupon)

	wrapFee := 0.0
	if giftWrap {
		wrapFee = e.cfg.GiftWrapFee
	}

	return Quote{
		Subtotal: money.Round2(subtotal),
		Shipping: money.Round2(shipping),
		Tax:      money.Round2(tax),
		Discount: money.Round2(discount),
		GiftWrap: money.Round2(wrapFee),
		Total:    money.Round2(e.OrderTotal(subtotal, shipping, tax, discount, giftWrap)),
	}
}
