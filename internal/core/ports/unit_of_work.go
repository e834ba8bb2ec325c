package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback is safe to defer; after Commit it reports an error that callers ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CouponRepository() CouponRepository
	SavedAddressRepository() SavedAddressRepository
	ProductCatalog() ProductCatalog
}
