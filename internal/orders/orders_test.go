package orders

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

func validOrder() Order {
	return Order{
		Items: []cart.LineItem{{ID: "p1", Title: "Shoe", Price: 49.99, Quantity: 2}},
		ShippingAddress: types.ShippingAddress{
			FullName:   "Ada Lovelace",
			Address:    "12 Analytical Way",
			City:       "London",
			PostalCode: "E1 6AN",
			Country:    "UK",
		},
		PaymentMethod: enums.PaymentMethodPayPal,
		ItemsPrice:    99.98,
		TaxPrice:      8.00,
		TotalPrice:    107.98,
	}
}

func TestPlaceAssignsOrderNumber(t *testing.T) {
	t.Parallel()

	svc := NewService(0, nil, nil)
	placed, err := svc.Place(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placed.OrderNumber == "" {
		t.Fatal("expected an order number")
	}
	if placed.PlacedAt.IsZero() {
		t.Fatal("expected a placement timestamp")
	}
}

func TestPlaceRejectsIncompleteOrders(t *testing.T) {
	t.Parallel()

	svc := NewService(0, nil, nil)
	ctx := context.Background()

	empty := validOrder()
	empty.Items = nil
	if _, err := svc.Place(ctx, empty); err == nil {
		t.Fatal("expected empty order to be rejected")
	}

	noAddress := validOrder()
	noAddress.ShippingAddress.City = ""
	if _, err := svc.Place(ctx, noAddress); err == nil {
		t.Fatal("expected missing address field to be rejected")
	}

	noPayment := validOrder()
	noPayment.PaymentMethod = ""
	if _, err := svc.Place(ctx, noPayment); err == nil {
		t.Fatal("expected missing payment method to be rejected")
	}
}

func TestHistoryAndGet(t *testing.T) {
	t.Parallel()

	svc := NewService(0, nil, nil)
	ctx := context.Background()

	first, err := svc.Place(ctx, validOrder())
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	second, err := svc.Place(ctx, validOrder())
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	history := svc.List(ctx)
	if len(history) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history))
	}
	if history[0].OrderNumber != first.OrderNumber || history[1].OrderNumber != second.OrderNumber {
		t.Fatalf("history out of order: %+v", history)
	}

	got, err := svc.Get(ctx, second.OrderNumber)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.OrderNumber != second.OrderNumber {
		t.Fatalf("Get returned wrong order: %+v", got)
	}

	if _, err := svc.Get(ctx, "missing"); err == nil {
		t.Fatal("expected lookup of unknown order to fail")
	}
}

func TestPlaceHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	svc := NewService(50*time.Millisecond, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Place(ctx, validOrder()); err == nil {
		t.Fatal("expected cancelled placement to fail")
	}
	if got := svc.List(context.Background()); len(got) != 0 {
		t.Fatalf("cancelled order must not enter history, got %+v", got)
	}
}
