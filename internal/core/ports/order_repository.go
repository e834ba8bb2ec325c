// Package ports defines the contracts between the storefront core and its
// adapters: persistence, catalog lookups, link signing, file storage and
// outbound notification.
package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Add and Update also persist the events and audit entries the aggregate has
// buffered, in the same transaction, and then clear them from the aggregate.
type OrderRepository interface {
	// Add inserts the order with its items and assigns the generated id.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its items.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Every mutating handler loads through it so that concurrent actions on
	// one order are serialized.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// GetByPaymentReference locks and loads the order carrying the reference.
	GetByPaymentReference(ctx context.Context, reference string) (*order.Order, error)

	// FindStaleDelivered returns ids of orders that are delivering with a
	// delivered delivery and were not updated since before.
	FindStaleDelivered(ctx context.Context, before time.Time, limit int) ([]int64, error)
}
