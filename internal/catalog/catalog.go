package catalog

import (
	"errors"
	"fmt"

	"fashionstore/internal/models"
)

// ErrProductNotFound is returned when a product ID has no catalog entry.
var ErrProductNotFound = errors.New("product not found in catalog")

// Catalog is the static, read-only product table. It is built once at
// startup and shared process-wide; no mutation after New.
type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// New builds the fixed store catalog.
func New() *Catalog {
	products := []models.Product{
		{ID: "shoes1", Name: "Sports Shoes", Price: 1999},
		{ID: "shoes2", Name: "Casual Shoes", Price: 1799},
		{ID: "shirt2", Name: "Formal Shirt", Price: 999},
		{ID: "shirt3", Name: "Printed Shirt", Price: 1099},
		{ID: "shirt4", Name: "Denim Shirt", Price: 1199},
		{ID: "pant2", Name: "Jeans Pants", Price: 1399},
		{ID: "pant3", Name: "Cotton Pants", Price: 1299},
		{ID: "pant4", Name: "Formal Pants", Price: 1499},
		{ID: "watch1", Name: "Smart Watch", Price: 2499},
		{ID: "watch2", Name: "Leather Watch", Price: 2299},
		{ID: "watch3", Name: "Classic Watch", Price: 2199},
		{ID: "watch4", Name: "Digital Watch", Price: 2099},
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks up a product by ID. Unknown IDs are an error, never a
// zero-priced product.
func (c *Catalog) Get(id string) (models.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, nil
}
