package ports

import (
	"context"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
)

// SavedAddressRepository persists saved addresses. Every read and delete is
// scoped by owner; an address owned by someone else is reported as not found.
type SavedAddressRepository interface {
	Add(ctx context.Context, a *address.SavedAddress) error

	// GetOwned loads an address by id if owner owns it.
	GetOwned(ctx context.Context, id int64, owner kernel.Identity) (*address.SavedAddress, error)

	// FindByText loads the owner's address with exactly this text.
	FindByText(ctx context.Context, owner kernel.Identity, text string) (*address.SavedAddress, error)

	// LockOwner serializes writers of one owner's addresses until the
	// surrounding transaction ends.
	LockOwner(ctx context.Context, owner kernel.Identity) error

	// ClearDefault unsets the default flag on all of the owner's addresses.
	ClearDefault(ctx context.Context, owner kernel.Identity) error

	Delete(ctx context.Context, id int64, owner kernel.Identity) error
}
