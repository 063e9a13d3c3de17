package pricing

import (
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Coupon is a promotional code and how it discounts the subtotal. Percentage
// values are fractions (0.10 is ten percent), fixed values are currency
// amounts.
type Coupon struct {
	Code        string             `json:"code"`
	Type        enums.DiscountType `json:"type"`
	Value       float64            `json:"value"`
	Description string             `json:"description"`
}

var coupons = map[string]Coupon{
	"WELCOME10": {
		Code:        "WELCOME10",
		Type:        enums.DiscountTypePercentage,
		Value:       0.10,
		Description: "10% off your first order",
	},
	"FREESHIP": {
		Code:        "FREESHIP",
		Type:        enums.DiscountTypeFixed,
		Value:       9.99,
		Description: "Free standard shipping",
	},
	"SAVE20": {
		Code:        "SAVE20",
		Type:        enums.DiscountTypeFixed,
		Value:       20,
		Description: "$20 off orders",
	},
}

// LookupCoupon resolves a code against the coupon table. Codes are matched
// exactly, including case, so "welcome10" is not a coupon.
func LookupCoupon(code string) (*Coupon, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New(errors.CodeNotFound, "invalid coupon code")
	}
	coupon, ok := coupons[code]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "invalid coupon code")
	}
	return &coupon, nil
}
