package enums

import "fmt"

// SortMode selects how the product browse endpoint orders its results.
type SortMode string

const (
	SortModeFeatured  SortMode = "featured"
	SortModePriceLow  SortMode = "price-low"
	SortModePriceHigh SortMode = "price-high"
	SortModeRating    SortMode = "rating"
)

var validSortModes = []SortMode{
	SortModeFeatured,
	SortModePriceLow,
	SortModePriceHigh,
	SortModeRating,
}

// String implements fmt.Stringer.
func (s SortMode) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortMode.
func (s SortMode) IsValid() bool {
	for _, candidate := range validSortModes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortMode converts raw input into a SortMode, defaulting to featured
// when the input is empty.
func ParseSortMode(value string) (SortMode, error) {
	if value == "" {
		return SortModeFeatured, nil
	}
	for _, candidate := range validSortModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode %q", value)
}
