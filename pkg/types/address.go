package types

import "strings"

// ShippingAddress is the destination collected during the shipping step.
type ShippingAddress struct {
	FullName   string `json:"fullName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Complete reports whether every required field carries a non-blank value.
func (a ShippingAddress) Complete() bool {
	fields := []string{a.FullName, a.Address, a.City, a.PostalCode, a.Country}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
