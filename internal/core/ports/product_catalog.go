package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// Product is the catalog's view of a sellable item at the time of the lookup.
type Product struct {
	ID       int64
	Name     string
	Category string
	ImageURL string
	Price    kernel.Money
}

// ProductCatalog is the read side of the external catalog.
type ProductCatalog interface {
	// GetProduct returns errs.ObjectNotFoundError for unknown or unavailable products.
	GetProduct(ctx context.Context, id int64) (Product, error)
}
