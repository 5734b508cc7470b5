package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMode orders the derived view by price.
type SortMode int

const (
	SortNone SortMode = iota
	SortPriceAsc
	SortPriceDesc
)

func (s SortMode) String() string {
	switch s {
	case SortPriceAsc:
		return "price-asc"
	case SortPriceDesc:
		return "price-desc"
	default:
		return "none"
	}
}

// Label is the short form shown in the status line.
func (s SortMode) Label() string {
	switch s {
	case SortPriceAsc:
		return "price: low to high"
	case SortPriceDesc:
		return "price: high to low"
	default:
		return "unsorted"
	}
}

// Next cycles none → ascending → descending → none.
func (s SortMode) Next() SortMode {
	switch s {
	case SortNone:
		return SortPriceAsc
	case SortPriceAsc:
		return SortPriceDesc
	default:
		return SortNone
	}
}

// ParseSortMode accepts the CLI spellings of each mode.
func ParseSortMode(raw string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return SortNone, nil
	case "asc", "price-asc", "low-to-high":
		return SortPriceAsc, nil
	case "desc", "price-desc", "high-to-low":
		return SortPriceDesc, nil
	}
	return SortNone, fmt.Errorf("unknown sort mode %q (want none, asc or desc)", raw)
}

// Filters are the inputs of the derived view besides the catalog itself.
type Filters struct {
	Search     string
	Categories []string
	Sort       SortMode
}

// HasCategory reports whether category is selected.
func (f Filters) HasCategory(category string) bool {
	return slices.Contains(f.Categories, category)
}

// Active reports whether any filter narrows or reorders the catalog.
func (f Filters) Active() bool {
	return f.Search != "" || len(f.Categories) > 0 || f.Sort != SortNone
}

// Derive applies search, category filter and price sort, in that order.
// The input slice is never modified.
func Derive(products []Product, f Filters) []Product {
	search := strings.ToLower(f.Search)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !MatchesSearch(p, search) {
			continue
		}
		if len(f.Categories) > 0 && !f.HasCategory(p.Category) {
			continue
		}
		out = append(out, p)
	}
	SortByPrice(out, f.Sort)
	return out
}

// MatchesSearch reports whether the product title contains the lowercased term.
func MatchesSearch(p Product, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), lowerTerm)
}

// SortByPrice sorts in place. Equal prices keep their relative order.
func SortByPrice(products []Product, mode SortMode) {
	switch mode {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	}
}

// Facets returns distinct categories in first-seen order.
func Facets(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	facets := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		facets = append(facets, p.Category)
	}
	return facets
}

// FacetCounts returns how many products carry each category.
func FacetCounts(products []Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}
