package catalog

import "errors"

// ErrNotFound is returned when no product carries the requested ID.
var ErrNotFound = errors.New("product not found")

// ErrDuplicateID is returned when inserting a product whose ID is already present.
var ErrDuplicateID = errors.New("duplicate product id")

// Catalog is the ordered, authoritative product collection. Insertion order is
// the display order before sorting.
type Catalog struct {
	products []Product
}

// New builds a catalog from the given products, rejecting duplicate IDs.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{}
	for _, p := range products {
		if err := c.Append(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the catalog in insertion order.
func (c *Catalog) Products() []Product {
	return CloneProducts(c.products)
}

// Get looks up a product by ID.
func (c *Catalog) Get(id int64) (Product, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.products[idx], true
	}
	return Product{}, false
}

// Append adds p to the end of the catalog.
func (c *Catalog) Append(p Product) error {
	if c.indexOf(p.ID) >= 0 {
		return ErrDuplicateID
	}
	c.products = append(c.products, p)
	return nil
}

// Replace swaps the record with p.ID in place, keeping its position.
func (c *Catalog) Replace(p Product) error {
	idx := c.indexOf(p.ID)
	if idx < 0 {
		return ErrNotFound
	}
	c.products[idx] = p
	return nil
}

// Remove deletes the product with the given ID and returns it.
func (c *Catalog) Remove(id int64) (Product, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Product{}, ErrNotFound
	}
	removed := c.products[idx]
	c.products = append(c.products[:idx:idx], c.products[idx+1:]...)
	return removed, nil
}

// Reset replaces the whole collection.
func (c *Catalog) Reset(products []Product) error {
	next, err := New(products)
	if err != nil {
		return err
	}
	c.products = next.products
	return nil
}

// Facets returns the distinct categories across the catalog.
func (c *Catalog) Facets() []string {
	return Facets(c.products)
}

func (c *Catalog) indexOf(id int64) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
