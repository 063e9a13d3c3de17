package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// CartGet returns the cart as it stands.
func CartGet(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Snapshot())
	}
}

type addItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price" validate:"min=0"`
	Quantity int     `json:"quantity" validate:"min=0"`
}

// CartAddItem merges an item into the cart.
func CartAddItem(store *cart.Store, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := cart.LineItem{
			ID:    strings.TrimSpace(payload.ID),
			Title: payload.Title,
			Image: payload.Image,
			Price: payload.Price,
		}
		if err := store.AddItem(r.Context(), item, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncCartMutation("add")
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartDecrementItem lowers an item's quantity by one, removing it at one.
func CartDecrementItem(store *cart.Store, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if err := store.DecrementItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncCartMutation("decrement")
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartDeleteItem removes an item entirely regardless of quantity.
func CartDeleteItem(store *cart.Store, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		store.DeleteItem(r.Context(), strings.TrimSpace(chi.URLParam(r, "id")))
		m.IncCartMutation("delete")
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartClear empties the cart.
func CartClear(store *cart.Store, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		store.Clear(r.Context())
		m.IncCartMutation("clear")
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartQuote prices the cart with the applied coupon and gift wrap option.
// The coupon and gift_wrap query parameters preview a different combination
// without changing what is applied to the checkout.
func CartQuote(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		query := r.URL.Query()
		if !query.Has("coupon") && !query.Has("gift_wrap") {
			responses.WriteSuccess(w, flow.Quote(r.Context()))
			return
		}

		quote, err := flow.QuoteWith(r.Context(), query.Get("coupon"), parseBoolParam(query.Get("gift_wrap")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func parseBoolParam(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
