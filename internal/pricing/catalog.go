package pricing

import (
	"errors"
	"strings"

	"github.com/GTDGit/todopro_api/internal/models"
)

var (
	// ErrOutOfRange is returned when a selection index is not valid for the
	// current product list.
	ErrOutOfRange = errors.New("product index out of range")
	// ErrUnknownProduct is returned when a product code is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product code")
	// ErrNoSelection is returned when a line names neither a code nor an index.
	ErrNoSelection = errors.New("no product selected")
)

// Lookup returns the product at a zero-based index.
func Lookup(products []models.Product, index int) (models.Product, error) {
	if index < 0 || index >= len(products) {
		return models.Product{}, ErrOutOfRange
	}
	return products[index], nil
}

// Catalog is an immutable snapshot of the product list used for one calculation.
type Catalog struct {
	products []models.Product
	byCode   map[string]int
}

// NewCatalog copies products into a new snapshot. When two products share a
// code the first one wins.
func NewCatalog(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byCode:   make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		key := normaliseCode(p.Code)
		if key == "" {
			continue
		}
		if _, exists := c.byCode[key]; !exists {
			c.byCode[key] = i
		}
	}
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the product list.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup resolves a positional selection.
func (c *Catalog) Lookup(index int) (models.Product, error) {
	return Lookup(c.products, index)
}

// Resolve finds a product by code, ignoring case and surrounding spaces.
func (c *Catalog) Resolve(code string) (models.Product, error) {
	i, ok := c.byCode[normaliseCode(code)]
	if !ok {
		return models.Product{}, ErrUnknownProduct
	}
	return c.products[i], nil
}

// Select resolves a line selection. A product code takes precedence over an index.
func (c *Catalog) Select(sel Selection) (models.Product, error) {
	if strings.TrimSpace(sel.ProductCode) != "" {
		return c.Resolve(sel.ProductCode)
	}
	if sel.ProductIndex != nil {
		return c.Lookup(int(*sel.ProductIndex))
	}
	return models.Product{}, ErrNoSelection
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
