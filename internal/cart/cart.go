// Package cart owns the shopping cart state and enforces its invariants
// under every mutation. There is exactly one Store per session; mutations
// are synchronous and totally ordered, and the in-memory state is the
// source of truth — the persistence slot is only a cache of it.
package cart

import (
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// LineItem is one product entry in the cart. Price is a unit-price snapshot
// taken when the item was first added; it is never re-fetched.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// State is the full cart state. Items keep insertion order: the order a
// product id was first added. TotalQuantity and TotalAmount are recomputed
// from Items after every mutation, never adjusted incrementally.
type State struct {
	Items           []LineItem             `json:"items"`
	TotalQuantity   int                    `json:"totalQuantity"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress *types.ShippingAddress `json:"-"`
	PaymentMethod   enums.PaymentMethod    `json:"-"`
}

// persistedCart is the JSON shape written to the persistence slot. Shipping
// and payment selections are checkout-transient and never persisted.
type persistedCart struct {
	Items         []LineItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalAmount   float64    `json:"totalAmount"`
}
