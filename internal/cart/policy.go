package cart

// Quantity bounds for a single line item.
const (
	MinItemQuantity = 1
	MaxItemQuantity = 10
)

// clampQuantity bounds a requested line-item quantity to [1, 10].
//
// Requests that would push an entry past the cap are clamped rather than
// rejected. Whether overflow should instead be an error is an open product
// question; keeping the policy in one place lets it be swapped without
// touching any call site.
func clampQuantity(quantity int) int {
	if quantity < MinItemQuantity {
		return MinItemQuantity
	}
	if quantity > MaxItemQuantity {
		return MaxItemQuantity
	}
	return quantity
}
