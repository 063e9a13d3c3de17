package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// CheckoutState reports which step the wizard sits at, with the current
// price breakdown for the review screen.
func CheckoutState(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"step":  flow.Step().String(),
			"quote": flow.Quote(r.Context()),
		})
	}
}

// CheckoutShipping commits the shipping address and advances the wizard.
func CheckoutShipping(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		var payload types.ShippingAddress
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := flow.SubmitShipping(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"step": flow.Step().String()})
	}
}

type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// CheckoutPayment commits the payment method and advances the wizard.
func CheckoutPayment(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		var payload paymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}
		if err := flow.SubmitPayment(r.Context(), method); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"step": flow.Step().String()})
	}
}

// CheckoutBack steps the wizard toward shipping.
func CheckoutBack(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}
		step := flow.Back(r.Context())
		responses.WriteSuccess(w, map[string]string{"step": step.String()})
	}
}

type couponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CheckoutApplyCoupon attaches a coupon to the current checkout.
func CheckoutApplyCoupon(flow *checkout.Flow, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := flow.ApplyCoupon(r.Context(), payload.Code)
		if err != nil {
			m.IncCouponMiss()
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// CheckoutRemoveCoupon detaches any applied coupon.
func CheckoutRemoveCoupon(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}
		flow.RemoveCoupon(r.Context())
		responses.WriteSuccess(w, flow.Quote(r.Context()))
	}
}

type giftWrapRequest struct {
	GiftWrap bool `json:"giftWrap"`
}

// CheckoutGiftWrap toggles the gift wrap option.
func CheckoutGiftWrap(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		var payload giftWrapRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		flow.SetGiftWrap(r.Context(), payload.GiftWrap)
		responses.WriteSuccess(w, flow.Quote(r.Context()))
	}
}

// CheckoutPlaceOrder finalizes the purchase from the review step.
func CheckoutPlaceOrder(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		order, err := flow.PlaceOrder(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
