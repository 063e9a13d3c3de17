package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/kv"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Store owns the cart State. The persistence slot is injected at
// construction and written synchronously at the end of each mutating
// operation; a slot failure is logged and never blocks the mutation.
type Store struct {
	mu    sync.Mutex
	slot  kv.Store
	logg  *logger.Logger
	state State
}

// NewStore builds a cart store backed by the provided persistence slot.
func NewStore(slot kv.Store, logg *logger.Logger) (*Store, error) {
	if slot == nil {
		return nil, fmt.Errorf("persistence slot required")
	}
	return &Store{slot: slot, logg: logg}, nil
}

// AddItem merges the item into the cart, incrementing quantity when an entry
// with the same id already exists. The final quantity is clamped to the
// per-item bounds. Malformed items are a caller contract violation.
func (s *Store) AddItem(ctx context.Context, item LineItem, requestedQuantity int) error {
	if strings.TrimSpace(item.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	if item.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item price cannot be negative")
	}
	if requestedQuantity == 0 {
		requestedQuantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.state.Items {
		if s.state.Items[i].ID == item.ID {
			s.state.Items[i].Quantity = clampQuantity(s.state.Items[i].Quantity + requestedQuantity)
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = clampQuantity(requestedQuantity)
		s.state.Items = append(s.state.Items, item)
	}

	s.recomputeAggregates()
	s.persist(ctx)
	return nil
}

// DecrementItem removes one unit of the entry, dropping the entry entirely
// when its quantity reaches zero.
func (s *Store) DecrementItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	if s.state.Items[idx].Quantity == 1 {
		s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)
	} else {
		s.state.Items[idx].Quantity--
	}

	s.recomputeAggregates()
	s.persist(ctx)
	return nil
}

// DeleteItem removes the entry for id regardless of quantity. Deleting an
// absent id is a no-op, not an error.
func (s *Store) DeleteItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)
	s.recomputeAggregates()
	s.persist(ctx)
}

// Clear resets the cart to the empty state and removes the persisted key
// itself rather than writing an empty snapshot. Idempotent.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = nil
	s.state.TotalQuantity = 0
	s.state.TotalAmount = 0

	if err := s.slot.Remove(ctx, kv.KeyCart); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithSlot(ctx, kv.KeyCart), "cart slot remove failed", err)
	}
}

// LoadFromPersistence replaces items and aggregates wholesale from the
// persisted snapshot. An absent or malformed snapshot leaves the current
// state untouched; both conditions are logged, never surfaced to the caller.
func (s *Store) LoadFromPersistence(ctx context.Context) {
	raw, ok, err := s.slot.Read(ctx, kv.KeyCart)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithSlot(ctx, kv.KeyCart), "cart slot read failed", err)
		}
		return
	}
	if !ok {
		return
	}

	var snapshot persistedCart
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithSlot(ctx, kv.KeyCart), "persisted cart is malformed", err)
		}
		return
	}
	if !snapshotConsistent(snapshot) {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithSlot(ctx, kv.KeyCart), "persisted cart aggregates disagree with items, ignoring snapshot")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = snapshot.Items
	s.state.TotalQuantity = snapshot.TotalQuantity
	s.state.TotalAmount = snapshot.TotalAmount
}

// SetShippingAddress overwrites the checkout-transient shipping address.
// No aggregate recomputation, no persistence.
func (s *Store) SetShippingAddress(address types.ShippingAddress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShippingAddress = &address
}

// SetPaymentMethod overwrites the checkout-transient payment selection.
func (s *Store) SetPaymentMethod(method enums.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PaymentMethod = method
}

// Snapshot returns a value copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Items = make([]LineItem, len(s.state.Items))
	copy(out.Items, s.state.Items)
	if s.state.ShippingAddress != nil {
		addr := *s.state.ShippingAddress
		out.ShippingAddress = &addr
	}
	return out
}

// IsEmpty reports whether the cart holds no items.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Items) == 0
}

func (s *Store) indexOf(id string) int {
	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) recomputeAggregates() {
	quantity := 0
	amount := 0.0
	for _, item := range s.state.Items {
		quantity += item.Quantity
		amount += item.Price * float64(item.Quantity)
	}
	s.state.TotalQuantity = quantity
	s.state.TotalAmount = amount
}

func (s *Store) persist(ctx context.Context) {
	snapshot := persistedCart{
		Items:         s.state.Items,
		TotalQuantity: s.state.TotalQuantity,
		TotalAmount:   s.state.TotalAmount,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithSlot(ctx, kv.KeyCart), "cart snapshot marshal failed", err)
		}
		return
	}
	if err := s.slot.Write(ctx, kv.KeyCart, string(payload)); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithSlot(ctx, kv.KeyCart), "cart slot write failed", err)
	}
}

func snapshotConsistent(snapshot persistedCart) bool {
	quantity := 0
	amount := 0.0
	for _, item := range snapshot.Items {
		if strings.TrimSpace(item.ID) == "" || item.Quantity < MinItemQuantity || item.Quantity > MaxItemQuantity || item.Price < 0 {
			return false
		}
		quantity += item.Quantity
		amount += item.Price * float64(item.Quantity)
	}
	if quantity != snapshot.TotalQuantity {
		return false
	}
	return math.Abs(amount-snapshot.TotalAmount) < 1e-9
}
