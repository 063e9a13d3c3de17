// Package orders accepts the order payload assembled at the end of checkout.
// There is no real fulfilment backend; the service mimics one with a short
// delay and an in-memory history so the rest of the flow behaves like
// production.
package orders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Order is the payload handed off when checkout completes, plus the
// identifiers the backend assigns on acceptance.
type Order struct {
	OrderNumber     string                `json:"orderNumber"`
	Items           []cart.LineItem       `json:"items"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   enums.PaymentMethod   `json:"paymentMethod"`
	ItemsPrice      float64               `json:"itemsPrice"`
	ShippingPrice   float64               `json:"shippingPrice"`
	TaxPrice        float64               `json:"taxPrice"`
	TotalPrice      float64               `json:"totalPrice"`
	PlacedAt        time.Time             `json:"placedAt"`
}

// Placer is what the checkout flow needs from an order backend.
type Placer interface {
	Place(ctx context.Context, order Order) (Order, error)
}

// Service is the simulated order backend.
type Service struct {
	mu      sync.Mutex
	history []Order
	delay   time.Duration
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

func NewService(delay time.Duration, logg *logger.Logger, m *metrics.StorefrontMetrics) *Service {
	return &Service{delay: delay, logg: logg, metrics: m}
}

// Place validates and accepts an order, assigning it an order number and a
// timestamp. The configured delay stands in for a fulfilment round trip.
func (s *Service) Place(ctx context.Context, order Order) (Order, error) {
	if len(order.Items) == 0 {
		return Order{}, errors.New(errors.CodeValidation, "order has no items")
	}
	if !order.ShippingAddress.Complete() {
		return Order{}, errors.New(errors.CodeValidation, "order is missing a shipping address")
	}
	if !order.PaymentMethod.IsValid() {
		return Order{}, errors.New(errors.CodeValidation, "order is missing a payment method")
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Order{}, errors.Wrap(errors.CodeDependency, ctx.Err(), "order placement interrupted")
		}
	}

	order.OrderNumber = uuid.NewString()
	order.PlacedAt = time.Now().UTC()

	s.mu.Lock()
	s.history = append(s.history, order)
	s.mu.Unlock()

	s.metrics.IncOrderPlaced()
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_number": order.OrderNumber,
			"total_price":  order.TotalPrice,
		})
		s.logg.Info(ctx, "order placed")
	}
	return order, nil
}

// List returns the orders placed so far, newest last.
func (s *Service) List(ctx context.Context) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.history))
	copy(out, s.history)
	return out
}

// Get looks up a single order by its number.
func (s *Service) Get(ctx context.Context, orderNumber string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.history {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return Order{}, errors.New(errors.CodeNotFound, "order not found")
}
