package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrListSavedAddressesQueryIsNotConstructed = errors.New(
	"ListSavedAddressesQuery must be created via NewListSavedAddressesQuery",
)

type ListSavedAddressesQuery struct {
	owner kernel.Identity
	guard guard.ConstructorGuard
}

func NewListSavedAddressesQuery(owner kernel.Identity) (ListSavedAddressesQuery, error) {
	if err := owner.Validate(); err != nil {
		return ListSavedAddressesQuery{}, err
	}
	return ListSavedAddressesQuery{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (q ListSavedAddressesQuery) Validate() error {
	return q.guard.Validate(ErrListSavedAddressesQueryIsNotConstructed)
}

func (q ListSavedAddressesQuery) Owner() kernel.Identity { return q.owner }

type ListSavedAddressesQueryResponse struct {
	ID        int64
	Label     string
	Address   string
	Entrance  string
	Floor     string
	Apartment string
	Intercom  string
	Comment   string
	Latitude  *float64
	Longitude *float64
	IsDefault bool
}
