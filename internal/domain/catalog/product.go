package catalog

import (
	"context"
	"strings"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies a catalog product
type Category string

const (
	CategoryCoffee   Category = "coffee"
	CategoryPastry   Category = "pastry"
	CategoryBeverage Category = "beverage"
	CategoryFood     Category = "food"
)

// IsValid checks if the category is a valid Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryCoffee, CategoryPastry, CategoryBeverage, CategoryFood:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Product is an immutable catalog entry. Cart lines and transaction items
// copy it by value at the moment of sale, so the price on a receipt stays
// frozen even if the catalog price later changes.
type Product struct {
	ID          uuid.UUID
	Name        string
	Category    Category
	Price       decimal.Decimal
	Description string
	IsAvailable bool
	PrepMinutes int
}

// NewProduct creates a new catalog product
func NewProduct(name string, category Category, price decimal.Decimal, description string, prepMinutes int) (Product, error) {
	if name == "" {
		return Product{}, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !category.IsValid() {
		return Product{}, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
	if price.IsNegative() {
		return Product{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return Product{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Price:       price,
		Description: description,
		IsAvailable: true,
		PrepMinutes: prepMinutes,
	}, nil
}

// Filter narrows a catalog listing
type Filter struct {
	Category   Category // empty matches all categories
	SearchText string   // case-insensitive substring on name or description
}

// Catalog is the ordered product list of one branch. Ordering is
// insertion order and listings preserve it.
type Catalog struct {
	products []Product
}

// NewCatalog creates a catalog with the given products
func NewCatalog(products ...Product) *Catalog {
	c := &Catalog{products: make([]Product, 0, len(products))}
	c.products = append(c.products, products...)
	return c
}

// Add appends a product to the catalog
func (c *Catalog) Add(p Product) {
	c.products = append(c.products, p)
}

// Products returns all products in insertion order
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find returns the product with the given id
func (c *Catalog) Find(id uuid.UUID) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// SetAvailability flips a product's availability flag
func (c *Catalog) SetAvailability(id uuid.UUID, available bool) error {
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i].IsAvailable = available
			return nil
		}
	}
	return shared.ErrNotFound
}

// ListAvailable returns available products matching the filter, in
// insertion order
func (c *Catalog) ListAvailable(filter Filter) []Product {
	query := strings.ToLower(filter.SearchText)
	result := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if !p.IsAvailable {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// ProductRepository loads a branch's catalog from the persistence
// collaborator; production seeding never happens in-core.
type ProductRepository interface {
	FindByBranch(ctx context.Context, key branch.Key) ([]Product, error)
	Save(ctx context.Context, key branch.Key, p Product) error
}
