// Package commands contains the storefront operations that modify state.
// Every handler follows the same shape: validate the command, begin a unit of
// work, load and lock the aggregate, apply the domain operation, persist it
// together with the events and audit entries it buffered, commit, and only
// then hand notifications to the notifier.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces segregated by what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	SavedAddressRepoFactory interface {
		SavedAddressRepository() ports.SavedAddressRepository
	}

	CatalogFactory interface {
		ProductCatalog() ports.ProductCatalog
	}

	// OrderUoW manages transactions for operations on a single existing order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW spans everything a new order touches: the catalog, the
	// coupon counter, saved addresses and the order itself.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   product, err := uow.ProductCatalog().GetProduct(ctx, id)
	//   ok, err := uow.CouponRepository().Redeem(ctx, couponID)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		CouponRepoFactory
		SavedAddressRepoFactory
		CatalogFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// AddressUoW manages transactions for saved-address operations.
	AddressUoW interface {
		TxManager
		SavedAddressRepoFactory
	}

	AddressUoWFactory interface {
		Create() AddressUoW
	}
)
