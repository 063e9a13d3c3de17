package catalog

import (
	"sort"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// CategoryAll matches every category when filtering.
const CategoryAll = "all"

// Filters narrows and orders a product list. Zero values mean no filtering
// and the default featured order.
type Filters struct {
	Category string
	Query    string
	SortBy   enums.SortMode
}

// Filter applies category and text filters and then sorts. The input slice
// is never modified; equal elements keep their catalog order.
func Filter(products []Product, filters Filters) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		if !matchesCategory(product, filters.Category) {
			continue
		}
		if !matchesQuery(product, filters.Query) {
			continue
		}
		out = append(out, product)
	}

	switch filters.SortBy {
	case enums.SortModePriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case enums.SortModePriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case enums.SortModeRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating.Rate > out[j].Rating.Rate })
	}
	// featured keeps catalog order

	return out
}

func matchesCategory(product Product, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return true
	}
	return strings.EqualFold(product.Category, category)
}

func matchesQuery(product Product, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(product.Title), query) ||
		strings.Contains(strings.ToLower(product.Description), query)
}
