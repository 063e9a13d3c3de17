// Package checkout drives the three-step checkout wizard over a cart:
// shipping address, payment method, then review and order placement. The
// flow owns step ordering; the cart store holds the data each step commits.
package checkout

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Flow is the checkout state machine. Guard failures never move the step or
// touch the cart, so a rejected submission leaves everything as it was.
type Flow struct {
	mu       sync.Mutex
	step     enums.CheckoutStep
	store    *cart.Store
	engine   *pricing.Engine
	placer   orders.Placer
	logg     *logger.Logger
	coupon   *pricing.Coupon
	giftWrap bool
}

func NewFlow(store *cart.Store, engine *pricing.Engine, placer orders.Placer, logg *logger.Logger) (*Flow, error) {
	if store == nil || engine == nil || placer == nil {
		return nil, errors.New(errors.CodeInternal, "checkout flow requires a cart store, pricing engine and order placer")
	}
	return &Flow{
		step:   enums.CheckoutStepShipping,
		store:  store,
		engine: engine,
		placer: placer,
		logg:   logg,
	}, nil
}

// Step reports where the wizard currently sits.
func (f *Flow) Step() enums.CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// SubmitShipping commits the shipping address and advances to the payment
// step. Every address field must be present.
func (f *Flow) SubmitShipping(ctx context.Context, address types.ShippingAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != enums.CheckoutStepShipping {
		return errors.New(errors.CodeStateConflict, "checkout is not at the shipping step")
	}
	if !address.Complete() {
		return errors.New(errors.CodeValidation, "all shipping address fields are required")
	}

	f.store.SetShippingAddress(address)
	f.step = enums.CheckoutStepPayment
	return nil
}

// SubmitPayment commits the payment method and advances to review.
func (f *Flow) SubmitPayment(ctx context.Context, method enums.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != enums.CheckoutStepPayment {
		return errors.New(errors.CodeStateConflict, "checkout is not at the payment step")
	}
	if !method.IsValid() {
		return errors.New(errors.CodeValidation, "unknown payment method")
	}

	f.store.SetPaymentMethod(method)
	f.step = enums.CheckoutStepReview
	return nil
}

// Back moves one step toward shipping. It is always allowed and never
// re-validates or discards what earlier steps committed.
func (f *Flow) Back(ctx context.Context) enums.CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case enums.CheckoutStepReview:
		f.step = enums.CheckoutStepPayment
	case enums.CheckoutStepPayment:
		f.step = enums.CheckoutStepShipping
	}
	return f.step
}

// ApplyCoupon resolves and attaches a coupon to the current checkout.
func (f *Flow) ApplyCoupon(ctx context.Context, code string) (*pricing.Coupon, error) {
	coupon, err := pricing.LookupCoupon(code)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.coupon = coupon
	f.mu.Unlock()
	return coupon, nil
}

// RemoveCoupon detaches any applied coupon.
func (f *Flow) RemoveCoupon(ctx context.Context) {
	f.mu.Lock()
	f.coupon = nil
	f.mu.Unlock()
}

// SetGiftWrap toggles the gift wrap option for this checkout.
func (f *Flow) SetGiftWrap(ctx context.Context, wrap bool) {
	f.mu.Lock()
	f.giftWrap = wrap
	f.mu.Unlock()
}

// Quote prices the cart as it stands, with the applied coupon and gift wrap
// option folded in.
func (f *Flow) Quote(ctx context.Context) pricing.Quote {
	f.mu.Lock()
	coupon := f.coupon
	wrap := f.giftWrap
	f.mu.Unlock()

	return f.engine.QuoteFor(f.store.Snapshot().TotalAmount, coupon, wrap)
}

// QuoteWith prices the cart against an explicit coupon code and gift wrap
// choice without touching what the checkout has applied. An empty code means
// no coupon.
func (f *Flow) QuoteWith(ctx context.Context, code string, giftWrap bool) (pricing.Quote, error) {
	var coupon *pricing.Coupon
	if code != "" {
		found, err := pricing.LookupCoupon(code)
		if err != nil {
			return pricing.Quote{}, err
		}
		coupon = found
	}
	return f.engine.QuoteFor(f.store.Snapshot().TotalAmount, coupon, giftWrap), nil
}

// PlaceOrder finalizes checkout from the review step. On success the cart is
// cleared and the flow resets to shipping for the next purchase. On failure
// the step, cart and coupon are untouched.
func (f *Flow) PlaceOrder(ctx context.Context) (orders.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != enums.CheckoutStepReview {
		return orders.Order{}, errors.New(errors.CodeStateConflict, "checkout is not at the review step")
	}

	state := f.store.Snapshot()
	if len(state.Items) == 0 {
		return orders.Order{}, errors.New(errors.CodeValidation, "cart is empty")
	}
	if state.ShippingAddress == nil {
		return orders.Order{}, errors.New(errors.CodeStateConflict, "shipping address was never submitted")
	}

	subtotal := state.TotalAmount
	shipping := f.engine.ShippingCost(subtotal)
	tax := f.engine.Tax(subtotal)
	discount := f.engine.Discount(subtotal, f.coupon)
	total := f.engine.OrderTotal(subtotal, shipping, tax, discount, f.giftWrap)

	placed, err := f.placer.Place(ctx, orders.Order{
		Items:           state.Items,
		ShippingAddress: *state.ShippingAddress,
		PaymentMethod:   state.PaymentMethod,
		ItemsPrice:      money.Round2(subtotal),
		ShippingPrice:   money.Round2(shipping),
		TaxPrice:        money.Round2(tax),
		TotalPrice:      money.Round2(total),
	})
	if err != nil {
		return orders.Order{}, err
	}

	f.store.Clear(ctx)
	f.coupon = nil
	f.giftWrap = false
	f.step = enums.CheckoutStepShipping
	return placed, nil
}
