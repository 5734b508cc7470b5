// Package catalog holds the product record types and the pure functions that
// derive the visible product list from a catalog and its filters.
package catalog

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Product is a single catalog record. Identity is the ID; every other field is
// replaced wholesale on edit.
type Product struct {
	ID          int64   `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Price       float64 `json:"price" yaml:"price"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Category    string  `json:"category" yaml:"category"`
	Description string  `json:"description" yaml:"description"`
}

// Fields are the editable, already-typed parts of a Product.
type Fields struct {
	Title       string
	Price       float64
	Quantity    int
	Category    string
	Description string
}

// WithFields returns a copy of p carrying the supplied fields.
func (p Product) WithFields(f Fields) Product {
	p.Title = f.Title
	p.Price = f.Price
	p.Quantity = f.Quantity
	p.Category = f.Category
	p.Description = f.Description
	return p
}

// Buffer renders the product back into raw form strings.
func (p Product) Buffer() FormBuffer {
	return FormBuffer{
		Title:       p.Title,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		Category:    p.Category,
		Description: p.Description,
	}
}

// StockValue is price multiplied by quantity on hand.
func (p Product) StockValue() float64 {
	return p.Price * float64(p.Quantity)
}

// PriceLabel formats the price with thousands separators and two decimals.
func (p Product) PriceLabel() string {
	return FormatPrice(p.Price)
}

// QuantityLabel formats the quantity with thousands separators.
func (p Product) QuantityLabel() string {
	return humanize.Comma(int64(p.Quantity))
}

// CategoryLabel returns the category or a placeholder for empty values.
func (p Product) CategoryLabel() string {
	return CategoryLabel(p.Category)
}

// CategoryLabel renders a facet value for display.
func CategoryLabel(category string) string {
	if category == "" {
		return "(none)"
	}
	return category
}

// centsLimit bounds the amounts humanize.FormatFloat can render; it goes
// through int64, and past this cents are below float64 precision anyway.
const centsLimit = 1e15

// FormatPrice renders an amount as "1,234.50". Larger amounts are rounded to
// whole units.
func FormatPrice(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return strconv.FormatFloat(v, 'f', -1, 64)
	case math.Abs(v) < centsLimit:
		return humanize.FormatFloat("#,###.##", v)
	}
	return humanize.Commaf(math.Round(v)) + ".00"
}

// String implements fmt.Stringer for log payloads.
func (p Product) String() string {
	return fmt.Sprintf("#%d %s", p.ID, p.Title)
}

// CloneProducts returns a shallow copy of the slice.
func CloneProducts(products []Product) []Product {
	if products == nil {
		return nil
	}
	dup := make([]Product, len(products))
	copy(dup, products)
	return dup
}
